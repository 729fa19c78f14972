package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/bububa/smart-chunker/components/document"
)

// Parser is a parser which parse PDF content to text
type Parser struct {
	password string
}

var _ document.Parser = (*Parser)(nil)

type Option func(*Parser)

// WithPassword opens encrypted documents
func WithPassword(password string) Option {
	return func(p *Parser) {
		p.password = password
	}
}

func NewParser(opts ...Option) *Parser {
	ret := new(Parser)
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Parse writes the text of every page, one line per text row and a blank
// line between pages.
func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	var (
		r    *pdf.Reader
		err  error
		size = reader.Size()
	)
	if p.password != "" {
		// the reader asks again until it gets an empty password
		tried := false
		if r, err = pdf.NewReaderEncrypted(reader, size, func() string {
			if tried {
				return ""
			}
			tried = true
			return p.password
		}); err != nil {
			return err
		}
	} else {
		if r, err = pdf.NewReader(reader, size); err != nil {
			return err
		}
	}
	totalPage := r.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return err
		}
		for _, row := range rows {
			written := 0
			for _, word := range row.Content {
				if word.S == "" {
					continue
				}
				if written > 0 {
					if _, err := writer.Write([]byte{' '}); err != nil {
						return err
					}
				}
				if _, err := writer.Write([]byte(word.S)); err != nil {
					return err
				}
				written++
			}
			if _, err := writer.Write([]byte{'\n'}); err != nil {
				return err
			}
		}
		if _, err := writer.Write([]byte{'\n'}); err != nil {
			return err
		}
	}
	return nil
}
