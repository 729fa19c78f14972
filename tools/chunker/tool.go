package chunker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/bububa/smart-chunker/components/chunker"
	"github.com/bububa/smart-chunker/components/document"
	"github.com/bububa/smart-chunker/components/document/parsers"
	"github.com/bububa/smart-chunker/tools"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Input is a chunking request. Either Text or Source must be set; Source is
// a file path, http(s) url or s3://bucket/key whose text is chunked.
type Input struct {
	// ID identifies the request, generated when empty
	ID string `json:"id,omitempty" yaml:"id,omitempty" validate:"omitempty,max=128"`
	// Text is the content to chunk
	Text string `json:"text,omitempty" yaml:"text,omitempty" validate:"required_without=Source"`
	// Source is loaded and converted to text when Text is empty
	Source string `json:"source,omitempty" yaml:"source,omitempty" validate:"required_without=Text"`
	// ChunkTokenLimit is the token budget of a chunk, the tool default when zero
	ChunkTokenLimit int `json:"chunk_token_limit,omitempty" yaml:"chunk_token_limit,omitempty" validate:"gte=0"`
	// OverlapTokens is the token overlap between chunks, the tool default when nil
	OverlapTokens *int `json:"overlap_tokens,omitempty" yaml:"overlap_tokens,omitempty" validate:"omitnil,gte=0"`
}

func NewInput(text string, limit int, overlap int) *Input {
	return &Input{
		Text:            text,
		ChunkTokenLimit: limit,
		OverlapTokens:   &overlap,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output is a chunking response
type Output struct {
	ID          string          `json:"id" yaml:"id"`
	Status      string          `json:"status" yaml:"status"`
	Message     string          `json:"message" yaml:"message"`
	Chunks      []chunker.Chunk `json:"chunks" yaml:"chunks"`
	TotalChunks int             `json:"total_chunks" yaml:"total_chunks"`
	TotalTokens int             `json:"total_tokens" yaml:"total_tokens"`
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Config struct {
	tools.Config
	// defaults for requests that leave limit or overlap out
	defaults    chunker.Options
	chunkerOpts []chunker.Option
	loadOpts    []document.LoadOption
	registry    *parsers.Registry
	logger      *zap.Logger
}

// Tool chunks text or documents on request
type Tool struct {
	Config
	validate *validator.Validate
}

var (
	_ tools.Tool[Input, Output] = (*Tool)(nil)
	_ tools.AnonymousTool       = (*Tool)(nil)
)

func New(opts ...Option) *Tool {
	ret := &Tool{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	ret.defaults = chunker.NewOptions(ret.chunkerOpts...)
	if ret.Title() == "" {
		ret.SetTitle("ChunkerTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Splits text into token-bounded chunks with overlap between neighbours.")
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	if ret.registry == nil {
		ret.registry = parsers.NewRegistry()
	}
	return ret
}

// Run chunks the input. Invalid requests fail with chunker.ErrInvalidInput.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.OnStart(ctx, t, input)
	output, err := t.run(ctx, input)
	if err != nil {
		t.OnError(ctx, t, input, err)
		return nil, err
	}
	t.OnEnd(ctx, t, input, output)
	return output, nil
}

func (t *Tool) RunAnonymous(ctx context.Context, input any) (any, error) {
	in, ok := input.(*Input)
	if !ok {
		return nil, tools.ErrInvalidSchema
	}
	return t.Run(ctx, in)
}

func (t *Tool) run(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: nil input", chunker.ErrInvalidInput)
	}
	if err := t.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("%w: %w", chunker.ErrInvalidInput, verrs)
		}
		return nil, err
	}
	id := input.ID
	if id == "" {
		id = xid.New().String()
	}
	limit := input.ChunkTokenLimit
	if limit == 0 {
		limit = t.defaults.Limit()
	}
	overlap := t.defaults.Overlap()
	if input.OverlapTokens != nil {
		overlap = *input.OverlapTokens
	}
	text := input.Text
	if strings.TrimSpace(text) == "" && input.Source != "" {
		var err error
		if text, err = t.loadText(ctx, input.Source); err != nil {
			return nil, err
		}
	}
	logger := t.logger.With(zap.String("id", id))
	logger.Info("chunking request",
		zap.Int("text_length", len(text)),
		zap.Int("limit", limit),
		zap.Int("overlap", overlap),
		zap.Float64("slack_ratio", t.defaults.SlackRatio()))
	opts := make([]chunker.Option, 0, len(t.chunkerOpts)+3)
	opts = append(opts, t.chunkerOpts...)
	opts = append(opts, chunker.WithLimit(limit), chunker.WithOverlap(overlap), chunker.WithLogger(logger))
	c, err := chunker.New(opts...)
	if err != nil {
		return nil, err
	}
	res, err := c.Split(text)
	if err != nil {
		return nil, err
	}
	return &Output{
		ID:          id,
		Status:      StatusSuccess,
		Message:     fmt.Sprintf("Text successfully chunked into %d chunks", res.TotalChunks),
		Chunks:      res.Chunks,
		TotalChunks: res.TotalChunks,
		TotalTokens: res.TotalTokens,
	}, nil
}

func (t *Tool) loadText(ctx context.Context, source string) (string, error) {
	opts := make([]document.LoadOption, 0, len(t.loadOpts)+1)
	opts = append(opts, document.WithLoadLogger(t.logger))
	opts = append(opts, t.loadOpts...)
	doc, err := document.Load(ctx, source, opts...)
	if err != nil {
		return "", err
	}
	return t.registry.Extract(ctx, doc)
}
