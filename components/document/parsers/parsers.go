// Package parsers picks a document.Parser for a document and extracts its
// text.
package parsers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"github.com/bububa/smart-chunker/components/document"
	"github.com/bububa/smart-chunker/components/document/parsers/docx"
	"github.com/bububa/smart-chunker/components/document/parsers/html"
	"github.com/bububa/smart-chunker/components/document/parsers/markdown"
	"github.com/bububa/smart-chunker/components/document/parsers/pdf"
	"github.com/bububa/smart-chunker/components/document/parsers/xlsx"
)

var ErrUnsupportedFormat = errors.New("unsupported document format")

const (
	MIMEPDF      = "application/pdf"
	MIMEDocx     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEXlsx     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEHTML     = "text/html"
	MIMEXHTML    = "application/xhtml+xml"
	MIMEMarkdown = "text/markdown"
	MIMEText     = "text/plain"
)

var markdownExtensions = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".mdown":    {},
}

// used when sniffing only finds a generic container
var extensionTypes = map[string]string{
	".pdf":  MIMEPDF,
	".docx": MIMEDocx,
	".xlsx": MIMEXlsx,
	".html": MIMEHTML,
	".htm":  MIMEHTML,
}

// Registry maps MIME types to parsers
type Registry struct {
	parsers map[string]document.Parser
}

// NewRegistry returns a registry with every built in parser
func NewRegistry() *Registry {
	ret := &Registry{parsers: make(map[string]document.Parser)}
	htmlParser := html.NewParser()
	ret.Register(MIMEPDF, pdf.NewParser())
	ret.Register(MIMEDocx, docx.NewParser())
	ret.Register(MIMEXlsx, xlsx.NewParser())
	ret.Register(MIMEHTML, htmlParser)
	ret.Register(MIMEXHTML, htmlParser)
	ret.Register(MIMEMarkdown, markdown.NewParser())
	ret.Register(MIMEText, document.PlainText)
	return ret
}

// Register sets the parser for a MIME type, replacing any previous one
func (r *Registry) Register(mimeType string, parser document.Parser) {
	r.parsers[mimeType] = parser
}

// MIMEType resolves the type used to pick a parser. Markdown cannot be told
// apart from plain text by content, so the file extension wins for it.
func MIMEType(doc *document.Document) string {
	if _, ok := markdownExtensions[doc.Extension()]; ok {
		return MIMEMarkdown
	}
	if ct := doc.Meta(document.MetaContentType); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil && mt == MIMEMarkdown {
			return mt
		}
	}
	detected := doc.MIME()
	if detected.Is("application/zip") || detected.Is("application/octet-stream") {
		if mt, ok := extensionTypes[doc.Extension()]; ok {
			return mt
		}
	}
	for _, mt := range []string{MIMEPDF, MIMEDocx, MIMEXlsx, MIMEHTML, MIMEXHTML} {
		if detected.Is(mt) {
			return mt
		}
	}
	if detected.Is(MIMEText) || utf8.Valid(doc.Bytes()) {
		return MIMEText
	}
	return detected.String()
}

// For returns the parser registered for the document type
func (r *Registry) For(doc *document.Document) (document.Parser, string, error) {
	mt := MIMEType(doc)
	parser, ok := r.parsers[mt]
	if !ok {
		return nil, mt, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt)
	}
	return parser, mt, nil
}

// Extract parses doc into plain text
func (r *Registry) Extract(ctx context.Context, doc *document.Document) (string, error) {
	parser, mt, err := r.For(doc)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := parser.Parse(ctx, doc.Reader(), &buf); err != nil {
		return "", fmt.Errorf("failed to parse %s document: %w", mt, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

var defaultRegistry = NewRegistry()

// Extract parses doc with the built in parsers
func Extract(ctx context.Context, doc *document.Document) (string, error) {
	return defaultRegistry.Extract(ctx, doc)
}
