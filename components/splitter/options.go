package splitter

import "go.uber.org/zap"

// Options holds the primary strategy and logger of a splitter.
type Options struct {
	primary Segmenter
	logger  *zap.Logger
}

// Option configures a splitter.
type Option func(*Options)

// WithPrimary replaces the default primary strategy.
func WithPrimary(s Segmenter) Option {
	return func(o *Options) {
		o.primary = s
	}
}

// WithLogger sets where fallback warnings go.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func (o *Options) apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
}
