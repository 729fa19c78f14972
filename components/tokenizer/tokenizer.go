package tokenizer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// DefaultEncoding is the byte-pair encoding used for every budget decision
// unless another one is configured. It is the GPT-3.5/GPT-4 vocabulary.
const DefaultEncoding = "cl100k_base"

// ErrUninitialized is returned when a Tokenizer is used before Initialize
// has completed successfully.
var ErrUninitialized = errors.New("tokenizer not initialized")

func init() {
	// BPE ranks are served from the embedded tables instead of being
	// downloaded on first use.
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// Tokenizer maps text to token ids and back.
// Count(text) always equals len(Encode(text)).
type Tokenizer interface {
	// Count returns the number of tokens in text.
	Count(text string) (int, error)
	// Encode converts text into token ids.
	Encode(text string) ([]int, error)
	// Decode converts token ids back into text.
	Decode(ids []int) (string, error)
}

// TikToken is a Tokenizer backed by a tiktoken encoding table.
// The table is loaded once by Initialize and is read-only afterwards, so a
// single TikToken can be shared by concurrent callers.
type TikToken struct {
	encoding    string
	logger      *zap.Logger
	initialized *atomic.Bool
	mu          sync.Mutex
	tke         *tiktoken.Tiktoken
}

var _ Tokenizer = (*TikToken)(nil)

// Option configures a TikToken.
type Option func(*TikToken)

// WithEncoding selects the tiktoken encoding. Common encodings include:
// - "cl100k_base" (GPT-4, ChatGPT)
// - "p50k_base" (GPT-3)
// - "r50k_base" (Codex)
func WithEncoding(encoding string) Option {
	return func(t *TikToken) {
		t.encoding = encoding
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(t *TikToken) {
		t.logger = logger
	}
}

// New returns an uninitialized TikToken. Call Initialize before use.
func New(opts ...Option) *TikToken {
	ret := &TikToken{
		encoding:    DefaultEncoding,
		initialized: atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	return ret
}

// Initialize loads the encoding table. It is safe to call from several
// goroutines: the table is built at most once, and callers arriving while it
// is being built wait for the outcome. A failed attempt leaves the tokenizer
// uninitialized so a later call can retry.
func (t *TikToken) Initialize() error {
	if t.initialized.Load() {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized.Load() {
		return nil
	}
	t.logger.Info("initializing tokenizer", zap.String("encoding", t.encoding))
	tke, err := tiktoken.GetEncoding(t.encoding)
	if err != nil {
		t.logger.Error("failed to initialize tokenizer", zap.String("encoding", t.encoding), zap.Error(err))
		return fmt.Errorf("failed to get encoding %s: %w", t.encoding, err)
	}
	t.tke = tke
	t.initialized.Store(true)
	return nil
}

// Initialized reports whether Initialize has completed successfully.
func (t *TikToken) Initialized() bool {
	return t.initialized.Load()
}

// Encoding returns the configured encoding name.
func (t *TikToken) Encoding() string {
	return t.encoding
}

func (t *TikToken) Count(text string) (int, error) {
	ids, err := t.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Encode treats special-token text as ordinary text, so user input can never
// inject control tokens.
func (t *TikToken) Encode(text string) ([]int, error) {
	if !t.initialized.Load() {
		return nil, ErrUninitialized
	}
	return t.tke.EncodeOrdinary(text), nil
}

func (t *TikToken) Decode(ids []int) (string, error) {
	if !t.initialized.Load() {
		return "", ErrUninitialized
	}
	return t.tke.Decode(ids), nil
}
