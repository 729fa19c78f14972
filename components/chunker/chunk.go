package chunker

import (
	"strconv"

	"github.com/google/uuid"
)

// Chunk is one segment of the input text.
type Chunk struct {
	// ID is derived from the chunk position and text, so the same input
	// always yields the same IDs.
	ID string `json:"id" yaml:"id"`
	// Index is the position of the chunk in document order
	Index int `json:"index" yaml:"index"`
	// Text is the chunk content, overlap included
	Text string `json:"text" yaml:"text"`
	// Tokens is the token count of Text
	Tokens int `json:"tokens" yaml:"tokens"`
	// Oversized is set when Tokens exceeds the limit. This happens for an
	// unsplittable fragment emitted on its own, and for a sentence inside
	// the slack band that did not fit with its neighbours.
	Oversized bool `json:"oversized,omitempty" yaml:"oversized,omitempty"`
}

func newChunk(index int, text string, tokens int, limit int) Chunk {
	return Chunk{
		ID:        uuid.NewSHA1(uuid.NameSpaceOID, []byte(strconv.Itoa(index)+":"+text)).String(),
		Index:     index,
		Text:      text,
		Tokens:    tokens,
		Oversized: tokens > limit,
	}
}

// Result is the outcome of chunking one text.
type Result struct {
	Chunks      []Chunk `json:"chunks" yaml:"chunks"`
	TotalChunks int     `json:"total_chunks" yaml:"total_chunks"`
	// TotalTokens sums the token counts of all chunks, overlap included
	TotalTokens int `json:"total_tokens" yaml:"total_tokens"`
}

// Texts returns the chunk texts in order.
func (r Result) Texts() []string {
	ret := make([]string, 0, len(r.Chunks))
	for _, c := range r.Chunks {
		ret = append(ret, c.Text)
	}
	return ret
}
