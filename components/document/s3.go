package document

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the part of the s3 client used to load documents
type S3API interface {
	GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

type S3Option func(*s3Loader)

type s3Loader struct {
	bucket   string
	key      string
	client   S3API
	maxBytes int64
}

func WithS3Bucket(bucket string) S3Option {
	return func(s *s3Loader) {
		s.bucket = bucket
	}
}

func WithS3Key(key string) S3Option {
	return func(s *s3Loader) {
		s.key = key
	}
}

func WithS3Client(clt S3API) S3Option {
	return func(s *s3Loader) {
		s.client = clt
	}
}

func WithS3MaxBytes(n int64) S3Option {
	return func(s *s3Loader) {
		s.maxBytes = n
	}
}

// LoadS3 downloads an object into a Document
func LoadS3(ctx context.Context, opts ...S3Option) (*Document, error) {
	ldr := new(s3Loader)
	for _, opt := range opts {
		opt(ldr)
	}
	if ldr.client == nil {
		return nil, ErrMissingS3Client
	}
	resp, err := ldr.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ldr.bucket),
		Key:    aws.String(ldr.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer resp.Body.Close()
	if ldr.maxBytes > 0 && resp.ContentLength != nil && *resp.ContentLength > ldr.maxBytes {
		return nil, fmt.Errorf("%w: s3://%s/%s is %d bytes", ErrTooLarge, ldr.bucket, ldr.key, *resp.ContentLength)
	}
	var body io.Reader = resp.Body
	if ldr.maxBytes > 0 {
		body = io.LimitReader(resp.Body, ldr.maxBytes+1)
	}
	bs, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read object from S3: %w", err)
	}
	if ldr.maxBytes > 0 && int64(len(bs)) > ldr.maxBytes {
		return nil, fmt.Errorf("%w: s3://%s/%s is larger than %d bytes", ErrTooLarge, ldr.bucket, ldr.key, ldr.maxBytes)
	}
	meta := map[string]string{
		MetaSource: "s3",
		MetaBucket: ldr.bucket,
		MetaKey:    ldr.key,
	}
	if ct := aws.ToString(resp.ContentType); ct != "" {
		meta[MetaContentType] = ct
	}
	return New(bs, meta), nil
}
