package document

import (
	"bytes"
	"context"
	"io"
)

type Parser interface {
	Parse(context.Context, *bytes.Reader, io.Writer) error
}

// ParserFunc adapts a plain function to Parser
type ParserFunc func(context.Context, *bytes.Reader, io.Writer) error

func (fn ParserFunc) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	return fn(ctx, reader, writer)
}

// PlainText copies the content unchanged
var PlainText = ParserFunc(func(_ context.Context, reader *bytes.Reader, writer io.Writer) error {
	_, err := io.Copy(writer, reader)
	return err
})
