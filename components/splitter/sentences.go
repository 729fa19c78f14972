package splitter

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/sentences"
)

var (
	errInvalidUTF8 = errors.New("invalid utf-8 text")

	sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)
)

// Sentences splits normalized text into sentences. The primary strategy
// follows the Unicode sentence boundary rules (UAX #29), which handle
// terminal punctuation, closing quotes and brackets. When it fails, text is
// cut after every run of terminal punctuation followed by whitespace.
type Sentences struct {
	Fallback
}

func NewSentences(opts ...Option) *Sentences {
	var o Options
	o.apply(opts)
	if o.primary == nil {
		o.primary = SegmenterFunc(UnicodeSentences)
	}
	return &Sentences{
		Fallback: Fallback{
			name:     "sentences",
			primary:  o.primary,
			fallback: RegexSentences,
			logger:   o.logger,
		},
	}
}

// UnicodeSentences segments text with the UAX #29 sentence rules.
func UnicodeSentences(text string) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, errInvalidUTF8
	}
	segmenter := sentences.NewSegmenter([]byte(text))
	var ret []string
	for segmenter.Next() {
		ret = append(ret, segmenter.Text())
	}
	if err := segmenter.Err(); err != nil {
		return nil, err
	}
	return compact(ret), nil
}

// RegexSentences cuts text after `[.!?]+` followed by whitespace, keeping
// the punctuation with its sentence. Text without any boundary comes back
// as a single sentence.
func RegexSentences(text string) []string {
	var ret []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		end := loc[0] + len(strings.TrimRight(text[loc[0]:loc[1]], " \t\r\n\v\f"))
		if s := strings.TrimSpace(text[start:end]); s != "" {
			ret = append(ret, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		ret = append(ret, s)
	}
	return ret
}
