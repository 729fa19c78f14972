package chunker

import (
	"strings"

	"go.uber.org/zap"
)

// assembly carries the state of a single Split call.
type assembly struct {
	*SmartChunker
	// chunks is append-only
	chunks []string
	// current is the chunk being built
	current []string
}

func (a *assembly) add(sentence string) error {
	sentence = strings.TrimSpace(sentence)
	if sentence == "" {
		return nil
	}
	tokens, err := a.tokenizer.Count(sentence)
	if err != nil {
		return err
	}
	threshold := a.Threshold()
	if tokens <= threshold {
		return a.merge(sentence)
	}
	a.logger.Debug("long sentence detected, splitting by words",
		zap.Int("tokens", tokens),
		zap.Int("threshold", threshold))
	fragments, err := a.splitLongSentence(sentence)
	if err != nil {
		return err
	}
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		n, err := a.tokenizer.Count(fragment)
		if err != nil {
			return err
		}
		if n <= a.limit {
			if err := a.merge(fragment); err != nil {
				return err
			}
			continue
		}
		a.flush()
		a.chunks = append(a.chunks, fragment)
	}
	return nil
}

// splitLongSentence packs the words of sentence into groups of at most limit
// tokens. Fragments do not overlap each other. A sentence with fewer than
// two words comes back unchanged.
func (a *assembly) splitLongSentence(sentence string) ([]string, error) {
	words := a.words.Split(sentence)
	if len(words) <= 1 {
		return []string{sentence}, nil
	}
	var (
		fragments []string
		group     []string
	)
	for _, word := range words {
		if len(group) > 0 {
			tokens, err := a.tokenizer.Count(strings.Join(group, " ") + " " + word)
			if err != nil {
				return nil, err
			}
			if tokens > a.limit {
				fragments = append(fragments, strings.Join(group, " "))
				group = []string{word}
				continue
			}
		}
		group = append(group, word)
	}
	if len(group) > 0 {
		fragments = append(fragments, strings.Join(group, " "))
	}
	return fragments, nil
}

// merge appends unit to the current chunk, or flushes the current chunk and
// starts a new one seeded with its trailing overlap when unit does not fit.
func (a *assembly) merge(unit string) error {
	if len(a.current) == 0 {
		a.current = append(a.current, unit)
		return nil
	}
	tokens, err := a.tokenizer.Count(strings.Join(a.current, " ") + " " + unit)
	if err != nil {
		return err
	}
	if tokens <= a.limit {
		a.current = append(a.current, unit)
		return nil
	}
	flushed := a.flush()
	seed, err := a.overlapSeed(flushed)
	if err != nil {
		return err
	}
	if seed != "" {
		a.current = append(a.current, seed)
	}
	a.current = append(a.current, unit)
	return nil
}

// flush moves the current chunk to chunks and returns its text.
func (a *assembly) flush() string {
	if len(a.current) == 0 {
		return ""
	}
	txt := strings.Join(a.current, " ")
	a.chunks = append(a.chunks, txt)
	a.current = a.current[:0]
	return txt
}

// overlapSeed decodes the last overlap tokens of txt. Token boundaries need
// not match character boundaries, so the seed is rebuilt from token ids
// rather than cut from the string.
func (a *assembly) overlapSeed(txt string) (string, error) {
	if a.overlap <= 0 || txt == "" {
		return "", nil
	}
	ids, err := a.tokenizer.Encode(txt)
	if err != nil {
		return "", err
	}
	if len(ids) > a.overlap {
		ids = ids[len(ids)-a.overlap:]
	}
	seed, err := a.tokenizer.Decode(ids)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(seed), nil
}
