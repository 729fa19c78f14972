package document

import (
	"bytes"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Meta keys set by the loaders
const (
	MetaSource      = "source"
	MetaFilename    = "filename"
	MetaModTime     = "modtime"
	MetaURL         = "url"
	MetaBucket      = "bucket"
	MetaKey         = "key"
	MetaContentType = "content_type"
)

// Document is a document container with metadata
type Document struct {
	buffer *bytes.Buffer
	meta   map[string]string
}

// New wraps content in a Document. meta is copied.
func New(content []byte, meta map[string]string) *Document {
	ret := &Document{
		buffer: bytes.NewBuffer(content),
		meta:   make(map[string]string, len(meta)),
	}
	for k, v := range meta {
		ret.meta[k] = v
	}
	return ret
}

func (d *Document) Reader() *bytes.Reader {
	return bytes.NewReader(d.buffer.Bytes())
}

func (d *Document) Bytes() []byte {
	return d.buffer.Bytes()
}

func (d *Document) String() string {
	return d.buffer.String()
}

func (d *Document) Len() int {
	return d.buffer.Len()
}

func (d *Document) Meta(key string) string {
	return d.meta[key]
}

// MIME sniffs the content type from the document bytes
func (d *Document) MIME() *mimetype.MIME {
	return mimetype.Detect(d.buffer.Bytes())
}

// Extension returns the lower cased file extension of the document name,
// taken from the filename, object key or url path in that order.
func (d *Document) Extension() string {
	for _, key := range []string{MetaFilename, MetaKey, MetaURL} {
		name := d.meta[key]
		if name == "" {
			continue
		}
		if key == MetaURL {
			if idx := strings.IndexAny(name, "?#"); idx >= 0 {
				name = name[:idx]
			}
		}
		if ext := path.Ext(name); ext != "" {
			return strings.ToLower(ext)
		}
	}
	return ""
}
