package document

import "errors"

var (
	ErrReading           = errors.New("document is reading")
	ErrUnsupportedSource = errors.New("unsupported document source")
	ErrTooLarge          = errors.New("document exceeds maximum size")
	ErrMissingS3Client   = errors.New("s3 client is required")
)
