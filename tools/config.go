package tools

import "context"

// Config holds the title, description and hooks shared by every tool
type Config struct {
	// title the default title of the tool
	title string
	// description the default description of the tool
	description string
	startHook   func(context.Context, AnonymousTool, any)
	endHook     func(context.Context, AnonymousTool, any, any)
	errorHook   func(context.Context, AnonymousTool, any, error)
}

func (c *Config) SetTitle(v string) {
	c.title = v
}

func (c Config) Title() string {
	return c.title
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}

func (c *Config) SetStartHook(fn func(context.Context, AnonymousTool, any)) {
	c.startHook = fn
}

func (c *Config) SetEndHook(fn func(context.Context, AnonymousTool, any, any)) {
	c.endHook = fn
}

func (c *Config) SetErrorHook(fn func(context.Context, AnonymousTool, any, error)) {
	c.errorHook = fn
}

func (c Config) OnStart(ctx context.Context, tool AnonymousTool, input any) {
	if fn := c.startHook; fn != nil {
		fn(ctx, tool, input)
	}
}

func (c Config) OnEnd(ctx context.Context, tool AnonymousTool, input any, output any) {
	if fn := c.endHook; fn != nil {
		fn(ctx, tool, input, output)
	}
}

func (c Config) OnError(ctx context.Context, tool AnonymousTool, input any, err error) {
	if fn := c.errorHook; fn != nil {
		fn(ctx, tool, input, err)
	}
}
