package chunker

import (
	"go.uber.org/zap"

	"github.com/bububa/smart-chunker/components/chunker"
	"github.com/bububa/smart-chunker/components/document"
	"github.com/bububa/smart-chunker/components/document/parsers"
	"github.com/bububa/smart-chunker/tools"
)

type Option func(*Config)

// WithChunkerOptions are applied to every chunker the tool builds. Their
// limit and overlap are the defaults for requests that leave them out.
func WithChunkerOptions(opts ...chunker.Option) Option {
	return func(c *Config) {
		c.chunkerOpts = append(c.chunkerOpts, opts...)
	}
}

// WithLoadOptions are used when a request names a source
func WithLoadOptions(opts ...document.LoadOption) Option {
	return func(c *Config) {
		c.loadOpts = append(c.loadOpts, opts...)
	}
}

// WithRegistry replaces the parsers used on loaded sources
func WithRegistry(r *parsers.Registry) Option {
	return func(c *Config) {
		c.registry = r
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithToolOptions applies the shared tool options
func WithToolOptions(opts ...tools.Option) Option {
	return func(c *Config) {
		tools.Apply(&c.Config, opts...)
	}
}
