package chunker

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bububa/smart-chunker/components/tokenizer"
)

// wordTokenizer treats every whitespace separated field as one token.
type wordTokenizer struct {
	mu    sync.Mutex
	vocab map[string]int
	words []string
}

var _ tokenizer.Tokenizer = (*wordTokenizer)(nil)

func newWordTokenizer() *wordTokenizer {
	return &wordTokenizer{vocab: make(map[string]int)}
}

func (t *wordTokenizer) Count(text string) (int, error) {
	return len(strings.Fields(text)), nil
}

func (t *wordTokenizer) Encode(text string) ([]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fields := strings.Fields(text)
	ids := make([]int, 0, len(fields))
	for _, field := range fields {
		id, ok := t.vocab[field]
		if !ok {
			id = len(t.words)
			t.vocab[field] = id
			t.words = append(t.words, field)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (t *wordTokenizer) Decode(ids []int) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(t.words) {
			return "", fmt.Errorf("unknown token id %d", id)
		}
		words = append(words, t.words[id])
	}
	return strings.Join(words, " "), nil
}

// byteTokenizer treats every byte as one token.
type byteTokenizer struct{}

var _ tokenizer.Tokenizer = byteTokenizer{}

func (byteTokenizer) Count(text string) (int, error) {
	return len(text), nil
}

func (byteTokenizer) Encode(text string) ([]int, error) {
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}
	return ids, nil
}

func (byteTokenizer) Decode(ids []int) (string, error) {
	bs := make([]byte, len(ids))
	for i, id := range ids {
		bs[i] = byte(id)
	}
	return string(bs), nil
}

// sentence builds a sentence of n words: a capitalized lead word followed by
// numbered lowercase words, the last one ending with a full stop.
func sentence(lead string, n int) string {
	words := make([]string, 0, n)
	words = append(words, lead)
	prefix := strings.ToLower(lead)
	for i := 1; i < n; i++ {
		words = append(words, fmt.Sprintf("%s%d", prefix, i))
	}
	words[n-1] += "."
	return strings.Join(words, " ")
}

// phrase is like sentence without the trailing full stop.
func phrase(lead string, n int) string {
	return strings.TrimSuffix(sentence(lead, n), ".")
}

func lastWords(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) > n {
		fields = fields[len(fields)-n:]
	}
	return strings.Join(fields, " ")
}
