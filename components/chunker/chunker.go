// Package chunker splits text into token-bounded chunks with a token overlap
// between neighbours.
//
// Text is normalized, cut into sentences and packed greedily into chunks of
// at most limit tokens. A sentence longer than the limit plus a slack band is
// first broken into word groups. Every chunk after a flush starts with the
// decoded last overlap tokens of the previous chunk.
package chunker

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/bububa/smart-chunker/components/normalizer"
	"github.com/bububa/smart-chunker/components/splitter"
	"github.com/bububa/smart-chunker/components/tokenizer"
)

// SmartChunker is immutable after New and safe for concurrent use. Each
// Split call owns its own buffers.
type SmartChunker struct {
	Options
}

// New creates a SmartChunker. Defaults:
// - limit: 200 tokens
// - overlap: 50 tokens
// - slack ratio: 0.1
// - tokenizer: the process-wide tokenizer, which must be initialized
// - sentence and word splitters: Unicode rules with regex/whitespace fallback
// - normalizer: normalizer.Normalize
func New(opts ...Option) (*SmartChunker, error) {
	ret := &SmartChunker{
		Options: NewOptions(opts...),
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	if ret.limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidInput, ret.limit)
	}
	if ret.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidInput, ret.overlap)
	}
	if ret.slackRatio < 0 {
		return nil, fmt.Errorf("%w: slack ratio must not be negative, got %g", ErrInvalidInput, ret.slackRatio)
	}
	if ret.tokenizer == nil {
		ret.tokenizer = tokenizer.Default()
	}
	if t, ok := ret.tokenizer.(interface{ Initialized() bool }); ok && !t.Initialized() {
		return nil, tokenizer.ErrUninitialized
	}
	if ret.sentences == nil {
		ret.sentences = splitter.NewSentences(splitter.WithLogger(ret.logger))
	}
	if ret.words == nil {
		ret.words = splitter.NewWords(splitter.WithLogger(ret.logger))
	}
	if ret.normalizer == nil {
		ret.normalizer = normalizer.Normalize
	}
	ret.logger.Debug("chunker created",
		zap.Int("limit", ret.limit),
		zap.Int("overlap", ret.overlap),
		zap.Float64("slack_ratio", ret.slackRatio))
	return ret, nil
}

// Threshold is the token count above which a sentence is split by words.
func (c *SmartChunker) Threshold() int {
	return c.limit + int(math.Floor(float64(c.limit)*c.slackRatio))
}

// Split normalizes text and cuts it into chunks. It returns every chunk or
// an error, never a partial list.
func (c *SmartChunker) Split(text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text content cannot be empty", ErrInvalidInput)
	}
	c.logger.Info("splitting text", zap.Int("text_length", len(text)))
	normalized := c.normalizer(text)
	if normalized == "" {
		return nil, fmt.Errorf("%w: text has no content after normalization", ErrInvalidInput)
	}
	a := &assembly{SmartChunker: c}
	for _, sentence := range c.sentences.Split(normalized) {
		if err := a.add(sentence); err != nil {
			return nil, err
		}
	}
	a.flush()

	ret := &Result{
		Chunks:      make([]Chunk, 0, len(a.chunks)),
		TotalChunks: len(a.chunks),
	}
	for idx, txt := range a.chunks {
		tokens, err := c.tokenizer.Count(txt)
		if err != nil {
			return nil, err
		}
		ret.Chunks = append(ret.Chunks, newChunk(idx, txt, tokens, c.limit))
		ret.TotalTokens += tokens
	}
	c.logger.Info("created chunks",
		zap.Int("total_chunks", ret.TotalChunks),
		zap.Int("total_tokens", ret.TotalTokens))
	return ret, nil
}

// SplitText is Split without the statistics.
func (c *SmartChunker) SplitText(text string) ([]string, error) {
	ret, err := c.Split(text)
	if err != nil {
		return nil, err
	}
	return ret.Texts(), nil
}

// TokenCount counts tokens with the chunker's tokenizer.
func (c *SmartChunker) TokenCount(text string) (int, error) {
	return c.tokenizer.Count(text)
}

// Chunk splits text into chunks of at most limit tokens, each starting with
// up to overlap tokens of its predecessor. It uses the process-wide tokenizer,
// so tokenizer.Initialize must have returned nil first.
func Chunk(text string, limit int, overlap int) ([]string, error) {
	c, err := New(WithLimit(limit), WithOverlap(overlap))
	if err != nil {
		return nil, err
	}
	return c.SplitText(text)
}

// CountTokens counts tokens with the process-wide tokenizer, so callers can
// report usage across returned chunks.
func CountTokens(text string) (int, error) {
	return tokenizer.CountTokens(text)
}
