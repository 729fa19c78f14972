package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/atomic"
)

type ReadStatus = int32

const (
	Unread ReadStatus = iota
	Reading
	ReadCompleted
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Http is a document fetched over http(s). The body is read once and
// cached; concurrent ReadAll calls while a read is in flight get ErrReading.
type Http struct {
	status   *atomic.Int32
	client   *http.Client
	link     string
	agent    string
	maxBytes int64
	Document
}

type HttpOption func(*Http)

func WithHttpClient(client *http.Client) HttpOption {
	return func(h *Http) {
		h.client = client
	}
}

func WithUserAgent(ua string) HttpOption {
	return func(h *Http) {
		h.agent = ua
	}
}

func WithHttpMaxBytes(n int64) HttpOption {
	return func(h *Http) {
		h.maxBytes = n
	}
}

func NewHttp(link string, opts ...HttpOption) *Http {
	ret := &Http{
		status: atomic.NewInt32(Unread),
		link:   link,
		Document: Document{
			buffer: new(bytes.Buffer),
			meta: map[string]string{
				MetaSource: "http",
				MetaURL:    link,
			},
		},
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.client == nil {
		ret.client = http.DefaultClient
	}
	if ret.agent == "" {
		ret.agent = DefaultUserAgent
	}
	return ret
}

func (h *Http) ReadStatus() ReadStatus {
	return h.status.Load()
}

// ReadAll fetches the body into the document buffer
func (h *Http) ReadAll(ctx context.Context) error {
	if h.ReadStatus() == ReadCompleted {
		return nil
	}
	if !h.status.CompareAndSwap(Unread, Reading) {
		return ErrReading
	}
	if err := h.fetch(ctx); err != nil {
		h.buffer.Reset()
		h.status.Store(Unread)
		return err
	}
	h.status.Store(ReadCompleted)
	return nil
}

func (h *Http) fetch(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, h.link, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("User-Agent", h.agent)
	httpResp, err := h.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return fmt.Errorf("fetch %s: unexpected status %s", h.link, httpResp.Status)
	}
	if ct := httpResp.Header.Get("Content-Type"); ct != "" {
		h.meta[MetaContentType] = ct
	}
	var body io.Reader = httpResp.Body
	if h.maxBytes > 0 {
		if httpResp.ContentLength > h.maxBytes {
			return fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, h.link, httpResp.ContentLength)
		}
		body = io.LimitReader(httpResp.Body, h.maxBytes+1)
	}
	n, err := io.Copy(h.buffer, body)
	if err != nil {
		return err
	}
	if h.maxBytes > 0 && n > h.maxBytes {
		return fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, h.link, h.maxBytes)
	}
	return nil
}
