// Package config loads chunking defaults and logging settings from a YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bububa/smart-chunker/components/chunker"
	"github.com/bububa/smart-chunker/components/tokenizer"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. SMARTCHUNK_CHUNK_LIMIT
	EnvPrefix = "SMARTCHUNK"
	// DefaultHTTPTimeout bounds a whole http(s) source download
	DefaultHTTPTimeout = 30 * time.Second
)

type Chunk struct {
	Limit      int     `mapstructure:"limit" yaml:"limit" validate:"gt=0"`
	Overlap    int     `mapstructure:"overlap" yaml:"overlap" validate:"gte=0"`
	SlackRatio float64 `mapstructure:"slack_ratio" yaml:"slack_ratio" validate:"gte=0"`
}

type Tokenizer struct {
	Encoding string `mapstructure:"encoding" yaml:"encoding" validate:"required"`
}

type Logging struct {
	Level string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
}

type Source struct {
	// MaxBytes caps loaded documents, zero means unlimited
	MaxBytes int64 `mapstructure:"max_bytes" yaml:"max_bytes" validate:"gte=0"`
	// S3Region and S3Endpoint configure the client used for s3:// sources
	S3Region   string `mapstructure:"s3_region" yaml:"s3_region,omitempty"`
	S3Endpoint string `mapstructure:"s3_endpoint" yaml:"s3_endpoint,omitempty" validate:"omitempty,url"`
	// UserAgent is sent with http(s) requests, a built in one when empty
	UserAgent   string        `mapstructure:"user_agent" yaml:"user_agent,omitempty"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout" yaml:"http_timeout" validate:"gte=0"`
	// PDFPassword opens encrypted PDF sources. It is never written out.
	PDFPassword string `mapstructure:"pdf_password" yaml:"-"`
}

// Config holds the application configuration.
type Config struct {
	Chunk     Chunk     `mapstructure:"chunk" yaml:"chunk"`
	Tokenizer Tokenizer `mapstructure:"tokenizer" yaml:"tokenizer"`
	Logging   Logging   `mapstructure:"logging" yaml:"logging"`
	Source    Source    `mapstructure:"source" yaml:"source"`
}

var defaults = map[string]any{
	"chunk.limit":         chunker.DefaultLimit,
	"chunk.overlap":       chunker.DefaultOverlap,
	"chunk.slack_ratio":   chunker.DefaultSlackRatio,
	"tokenizer.encoding":  tokenizer.DefaultEncoding,
	"logging.level":       "info",
	"source.max_bytes":    int64(50 << 20),
	"source.s3_region":    "",
	"source.s3_endpoint":  "",
	"source.user_agent":   "",
	"source.http_timeout": DefaultHTTPTimeout,
	"source.pdf_password": "",
}

// Default returns the built in configuration
func Default() *Config {
	return &Config{
		Chunk: Chunk{
			Limit:      chunker.DefaultLimit,
			Overlap:    chunker.DefaultOverlap,
			SlackRatio: chunker.DefaultSlackRatio,
		},
		Tokenizer: Tokenizer{Encoding: tokenizer.DefaultEncoding},
		Logging:   Logging{Level: "info"},
		Source:    Source{MaxBytes: 50 << 20, HTTPTimeout: DefaultHTTPTimeout},
	}
}

// Load reads path, when not empty, over the defaults and applies
// environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var ErrInvalidConfig = errors.New("invalid config")

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// ChunkerOptions turns the chunk settings into chunker options
func (c *Config) ChunkerOptions() []chunker.Option {
	return []chunker.Option{
		chunker.WithLimit(c.Chunk.Limit),
		chunker.WithOverlap(c.Chunk.Overlap),
		chunker.WithSlackRatio(c.Chunk.SlackRatio),
	}
}
