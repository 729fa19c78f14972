package html

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bububa/smart-chunker/components/document"
)

var (
	// removed before the main content is picked
	noiseTags = []string{"script", "style", "noscript", "template", "nav", "header", "footer", "aside"}
	// tried in order, the first element of the first match wins
	contentCandidates = []string{
		"main",
		"#content, #main",
		".content, .main",
		"article",
		"body",
	}
	// block level elements end a line
	blockTags = "p, div, li, dt, dd, tr, br, pre, blockquote, section, h1, h2, h3, h4, h5, h6"
)

// Parser extracts the readable text of the main content of an html page
type Parser struct{}

var _ document.Parser = (*Parser)(nil)

func NewParser() *Parser {
	return new(Parser)
}

func (p *Parser) Parse(ctx context.Context, reader *bytes.Reader, writer io.Writer) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return err
	}
	_, err = io.WriteString(writer, ExtractText(doc))
	return err
}

// ExtractText strips page chrome from doc and returns the text of its main
// content with one line per block element.
func ExtractText(doc *goquery.Document) string {
	for _, tag := range noiseTags {
		doc.Find(tag).Remove()
	}
	sel := doc.Selection
	for _, selector := range contentCandidates {
		if found := doc.Find(selector); found.Length() > 0 {
			sel = found.First()
			break
		}
	}
	sel.Find(blockTags).Each(func(_ int, s *goquery.Selection) {
		s.AfterHtml("\n")
	})
	lines := strings.Split(sel.Text(), "\n")
	ret := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			ret = append(ret, line)
		}
	}
	return strings.Join(ret, "\n")
}
