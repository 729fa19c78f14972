package tokenizer

var defaultTokenizer = New()

// Default returns the process-wide tokenizer. It is not usable until
// Initialize has returned nil.
func Default() *TikToken {
	return defaultTokenizer
}

// Initialize loads the process-wide tokenizer. It is idempotent and safe to
// call from any goroutine.
func Initialize() error {
	return defaultTokenizer.Initialize()
}

// CountTokens counts tokens with the process-wide tokenizer.
func CountTokens(text string) (int, error) {
	return defaultTokenizer.Count(text)
}
