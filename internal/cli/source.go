package cli

import (
	"net/http"

	"github.com/bububa/smart-chunker/components/document"
	"github.com/bububa/smart-chunker/components/document/parsers"
	"github.com/bububa/smart-chunker/components/document/parsers/pdf"
)

// loadOptions turn the source settings into document load options
func (a *app) loadOptions() []document.LoadOption {
	src := a.cfg.Source
	return []document.LoadOption{
		document.WithMaxBytes(src.MaxBytes),
		document.WithLoadHttpClient(&http.Client{Timeout: src.HTTPTimeout}),
		document.WithLoadUserAgent(src.UserAgent),
		document.WithLoadS3Client(newS3Client(src)),
		document.WithLoadLogger(a.logger),
	}
}

// registry is the default parser set, with the configured PDF password
func (a *app) registry() *parsers.Registry {
	r := parsers.NewRegistry()
	if pw := a.cfg.Source.PDFPassword; pw != "" {
		r.Register(parsers.MIMEPDF, pdf.NewParser(pdf.WithPassword(pw)))
	}
	return r
}
