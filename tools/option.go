package tools

import "context"

// Option configures the shared part of a tool
type Option func(c *Config)

// Apply runs opts against c in order
func Apply(c *Config, opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

func WithTitle(title string) Option {
	return func(c *Config) {
		c.SetTitle(title)
	}
}

func WithDescription(desc string) Option {
	return func(c *Config) {
		c.SetDescription(desc)
	}
}

// WithStartHook is called with the tool input before every run
func WithStartHook(fn func(context.Context, AnonymousTool, any)) Option {
	return func(c *Config) {
		c.SetStartHook(fn)
	}
}

// WithEndHook is called with the input and output of every successful run
func WithEndHook(fn func(context.Context, AnonymousTool, any, any)) Option {
	return func(c *Config) {
		c.SetEndHook(fn)
	}
}

// WithErrorHook is called with the input and error of every failed run
func WithErrorHook(fn func(context.Context, AnonymousTool, any, error)) Option {
	return func(c *Config) {
		c.SetErrorHook(fn)
	}
}
