package document

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

type LoadOption func(*loadOptions)

type loadOptions struct {
	httpClient *http.Client
	userAgent  string
	s3Client   S3API
	maxBytes   int64
	logger     *zap.Logger
}

func WithLoadHttpClient(clt *http.Client) LoadOption {
	return func(o *loadOptions) {
		o.httpClient = clt
	}
}

// WithLoadUserAgent sets the User-Agent of http(s) requests
func WithLoadUserAgent(ua string) LoadOption {
	return func(o *loadOptions) {
		o.userAgent = ua
	}
}

func WithLoadS3Client(clt S3API) LoadOption {
	return func(o *loadOptions) {
		o.s3Client = clt
	}
}

// WithMaxBytes caps the document size; zero means unlimited
func WithMaxBytes(n int64) LoadOption {
	return func(o *loadOptions) {
		o.maxBytes = n
	}
}

func WithLoadLogger(l *zap.Logger) LoadOption {
	return func(o *loadOptions) {
		o.logger = l
	}
}

// Load reads a document from a local path, an http(s) url or an
// s3://bucket/key location.
func Load(ctx context.Context, source string, opts ...LoadOption) (*Document, error) {
	o := loadOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	}
	var (
		doc *Document
		err error
	)
	switch scheme := sourceScheme(source); scheme {
	case "", "file":
		doc, err = LoadFile(strings.TrimPrefix(source, "file://"), o.maxBytes)
	case "http", "https":
		h := NewHttp(source, WithHttpClient(o.httpClient), WithUserAgent(o.userAgent), WithHttpMaxBytes(o.maxBytes))
		if err = h.ReadAll(ctx); err == nil {
			doc = &h.Document
		}
	case "s3":
		bucket, key, perr := ParseS3URI(source)
		if perr != nil {
			return nil, perr
		}
		doc, err = LoadS3(ctx, WithS3Client(o.s3Client), WithS3Bucket(bucket), WithS3Key(key), WithS3MaxBytes(o.maxBytes))
	default:
		return nil, fmt.Errorf("%w: scheme %q", ErrUnsupportedSource, scheme)
	}
	if err != nil {
		o.logger.Warn("failed to load document", zap.String("source", source), zap.Error(err))
		return nil, err
	}
	o.logger.Debug("document loaded",
		zap.String("source", source),
		zap.Int("bytes", doc.Len()))
	return doc, nil
}

// ParseS3URI splits s3://bucket/key into its parts
func ParseS3URI(uri string) (string, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrUnsupportedSource, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w: invalid s3 uri %q", ErrUnsupportedSource, uri)
	}
	return u.Host, key, nil
}

func sourceScheme(source string) string {
	idx := strings.Index(source, "://")
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(source[:idx])
}
