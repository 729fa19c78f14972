package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bububa/smart-chunker/components/chunker"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 200, cfg.Chunk.Limit)
	assert.Equal(t, 50, cfg.Chunk.Overlap)
	assert.InDelta(t, 0.1, cfg.Chunk.SlackRatio, 1e-9)
	assert.Equal(t, "cl100k_base", cfg.Tokenizer.Encoding)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
chunk:
  limit: 120
  overlap: 10
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Chunk.Limit)
	assert.Equal(t, 10, cfg.Chunk.Overlap)
	assert.InDelta(t, 0.1, cfg.Chunk.SlackRatio, 1e-9)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadSource(t *testing.T) {
	path := writeConfig(t, `
source:
  user_agent: test-agent/1.0
  http_timeout: 5s
  pdf_password: secret
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-agent/1.0", cfg.Source.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.Source.HTTPTimeout)
	assert.Equal(t, "secret", cfg.Source.PDFPassword)

	bs, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(bs), "http_timeout: 5s")
	assert.NotContains(t, string(bs), "secret")
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("SMARTCHUNK_CHUNK_LIMIT", "64")
	t.Setenv("SMARTCHUNK_LOGGING_LEVEL", "warn")
	path := writeConfig(t, "chunk:\n  limit: 120\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Chunk.Limit)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "chunk:\n  limit: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeConfig(t, "logging:\n  level: loud\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "default", mutate: func(*Config) {}, ok: true},
		{name: "zero overlap", mutate: func(c *Config) { c.Chunk.Overlap = 0 }, ok: true},
		{name: "negative overlap", mutate: func(c *Config) { c.Chunk.Overlap = -1 }},
		{name: "negative slack", mutate: func(c *Config) { c.Chunk.SlackRatio = -0.5 }},
		{name: "empty encoding", mutate: func(c *Config) { c.Tokenizer.Encoding = "" }},
		{name: "bad endpoint", mutate: func(c *Config) { c.Source.S3Endpoint = "not a url" }},
		{name: "endpoint", mutate: func(c *Config) { c.Source.S3Endpoint = "http://localhost:9000" }, ok: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	bs, err := Default().Marshal()
	require.NoError(t, err)
	var got Config
	require.NoError(t, yaml.Unmarshal(bs, &got))
	assert.Equal(t, *Default(), got)
	assert.Contains(t, string(bs), "limit: 200")
}

func TestChunkerOptions(t *testing.T) {
	cfg := Default()
	cfg.Chunk.Limit = 64
	cfg.Chunk.Overlap = 8
	cfg.Chunk.SlackRatio = 0.25
	o := chunker.NewOptions(cfg.ChunkerOptions()...)
	assert.Equal(t, 64, o.Limit())
	assert.Equal(t, 8, o.Overlap())
	assert.InDelta(t, 0.25, o.SlackRatio(), 1e-9)
}
