package markdown

import (
	"bytes"
	"context"
	"io"

	"gitlab.com/golang-commonmark/markdown"

	"github.com/bububa/smart-chunker/components/document"
	"github.com/bububa/smart-chunker/components/document/parsers/html"
)

// Parser renders markdown to html and keeps the text, so markup such as
// emphasis markers and link targets does not reach the chunks.
type Parser struct {
	md   *markdown.Markdown
	html *html.Parser
}

var _ document.Parser = (*Parser)(nil)

func NewParser() *Parser {
	return &Parser{
		md:   markdown.New(markdown.HTML(true), markdown.Tables(true), markdown.Linkify(false), markdown.Typographer(false)),
		html: html.NewParser(),
	}
}

func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	src, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	rendered := p.md.RenderToString(src)
	return p.html.Parse(ctx, bytes.NewReader([]byte(rendered)), writer)
}
