package chunker

import (
	"go.uber.org/zap"

	"github.com/bububa/smart-chunker/components/tokenizer"
)

const (
	// DefaultLimit is the default maximum number of tokens per chunk.
	DefaultLimit = 200
	// DefaultOverlap is the default number of tokens carried from one chunk
	// into the next.
	DefaultOverlap = 50
	// DefaultSlackRatio widens the limit before a sentence is treated as
	// oversized and split word by word.
	DefaultSlackRatio = 0.1
)

// Splitter splits text into ordered, trimmed, non-empty parts and never
// fails.
type Splitter interface {
	Split(text string) []string
}

// Options holds the configuration of a SmartChunker.
type Options struct {
	limit      int
	overlap    int
	slackRatio float64
	tokenizer  tokenizer.Tokenizer
	sentences  Splitter
	words      Splitter
	normalizer func(string) string
	logger     *zap.Logger
}

// Option is a function type for configuring a SmartChunker.
// This follows the functional options pattern for clean and flexible configuration.
type Option func(*Options)

// WithLimit sets the maximum number of tokens per chunk.
func WithLimit(limit int) Option {
	return func(o *Options) {
		o.limit = limit
	}
}

// WithOverlap sets how many trailing tokens of a chunk start the next one.
// An overlap at or above the limit is accepted, but every chunk then repeats
// most of its predecessor.
func WithOverlap(overlap int) Option {
	return func(o *Options) {
		o.overlap = overlap
	}
}

// WithSlackRatio sets the fraction of the limit a sentence may exceed before
// it is split by words. The threshold is limit + floor(limit * ratio).
func WithSlackRatio(ratio float64) Option {
	return func(o *Options) {
		o.slackRatio = ratio
	}
}

// WithTokenizer replaces the process-wide tokenizer.
func WithTokenizer(t tokenizer.Tokenizer) Option {
	return func(o *Options) {
		o.tokenizer = t
	}
}

// WithSentenceSplitter replaces the splitter that cuts text into sentences.
func WithSentenceSplitter(s Splitter) Option {
	return func(o *Options) {
		o.sentences = s
	}
}

// WithWordSplitter replaces the splitter used on oversized sentences.
func WithWordSplitter(s Splitter) Option {
	return func(o *Options) {
		o.words = s
	}
}

// WithNormalizer replaces the text cleanup applied before segmentation.
func WithNormalizer(fn func(string) string) Option {
	return func(o *Options) {
		o.normalizer = fn
	}
}

// WithLogger sets the logger, a no-op logger when unset.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// NewOptions applies opts over the default limit, overlap and slack ratio.
// It does not validate the result, New does.
func NewOptions(opts ...Option) Options {
	ret := Options{
		limit:      DefaultLimit,
		overlap:    DefaultOverlap,
		slackRatio: DefaultSlackRatio,
	}
	for _, opt := range opts {
		opt(&ret)
	}
	return ret
}

func (o Options) Limit() int {
	return o.limit
}

func (o Options) Overlap() int {
	return o.overlap
}

func (o Options) SlackRatio() float64 {
	return o.slackRatio
}
