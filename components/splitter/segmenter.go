package splitter

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrSegmentationDegraded marks a primary segmentation failure that was
// recovered by the fallback strategy. It is only logged.
var ErrSegmentationDegraded = errors.New("segmentation degraded")

// Segmenter splits text into ordered, trimmed, non-empty parts.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// SegmenterFunc adapts a function to the Segmenter interface.
type SegmenterFunc func(text string) ([]string, error)

func (fn SegmenterFunc) Segment(text string) ([]string, error) {
	return fn(text)
}

// Fallback runs the primary Segmenter and switches to the fallback on any
// error or panic. The fallback never fails.
type Fallback struct {
	name     string
	primary  Segmenter
	fallback func(string) []string
	logger   *zap.Logger
}

// Split returns the primary segmentation of text, or the fallback
// segmentation when the primary one fails.
func (f *Fallback) Split(text string) []string {
	parts, err := safeSegment(f.primary, text)
	if err == nil {
		return compact(parts)
	}
	f.logger.Warn("primary segmentation failed, using fallback",
		zap.String("segmenter", f.name),
		zap.Int("text_length", len(text)),
		zap.Error(fmt.Errorf("%w: %w", ErrSegmentationDegraded, err)))
	return compact(f.fallback(text))
}

func safeSegment(s Segmenter, text string) (parts []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			parts = nil
			err = fmt.Errorf("segmenter panic: %v", r)
		}
	}()
	return s.Segment(text)
}

// compact trims every part and drops the empty ones.
func compact(parts []string) []string {
	ret := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}
