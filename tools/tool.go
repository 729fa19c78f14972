package tools

import (
	"context"
	"errors"
)

var ErrInvalidSchema = errors.New("invalid input schema")

type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
	SetStartHook(fn func(context.Context, AnonymousTool, any))
	SetEndHook(fn func(context.Context, AnonymousTool, any, any))
	SetErrorHook(fn func(context.Context, AnonymousTool, any, error))
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// AnonymousTool runs without knowing the concrete input type, e.g. when
// tools are chained or driven from a command line.
type AnonymousTool interface {
	ITool
	RunAnonymous(context.Context, any) (any, error)
}
