package chunker

import "errors"

// ErrInvalidInput is returned for empty or whitespace-only text, a
// non-positive limit or a negative overlap. Nothing is processed when it is
// returned.
var ErrInvalidInput = errors.New("invalid input")
