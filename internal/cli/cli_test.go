package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chunktool "github.com/bububa/smart-chunker/tools/chunker"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestChunkText(t *testing.T) {
	out, err := run(t, "", "chunk", "--id", "abc", "--text", "A. B. C.")
	require.NoError(t, err)
	var output chunktool.Output
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	assert.Equal(t, "abc", output.ID)
	assert.Equal(t, chunktool.StatusSuccess, output.Status)
	require.Len(t, output.Chunks, 1)
	assert.Equal(t, "A. B. C.", output.Chunks[0].Text)
}

func TestChunkStdin(t *testing.T) {
	out, err := run(t, "Read from stdin. Twice over.", "chunk", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "status: success")
	assert.Contains(t, out, "text: Read from stdin. Twice over.")
	assert.Contains(t, out, "total_chunks: 1")
}

func TestChunkSource(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(fname, []byte("# Notes\n\nThe *first* point. The second point.\n"), 0o600))

	out, err := run(t, "", "chunk", fname, "--format", "text", "--limit", "5", "--overlap", "0")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "--- chunk 0 ("), out)
	assert.NotContains(t, out, "*first*")
	assert.Contains(t, out, "chunks,")
}

func TestChunkErrors(t *testing.T) {
	_, err := run(t, "", "chunk", "--text", "Hi.", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "", "chunk", "--text", "Hi.", "--limit", "0")
	assert.ErrorContains(t, err, "limit must be positive")

	_, err = run(t, "", "chunk", "--text", "Hi.", "--source", "a.txt")
	assert.Error(t, err)

	_, err = run(t, "   ", "chunk")
	assert.ErrorContains(t, err, "invalid input")
}

func TestChunkUsesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartchunk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk:\n  limit: 5\n  overlap: 0\n  slack_ratio: 0\n"), 0o600))
	text := "One two three four. Five six seven eight. Nine ten eleven twelve."
	out, err := run(t, "", "--config", path, "chunk", "--text", text)
	require.NoError(t, err)
	var output chunktool.Output
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	assert.Greater(t, output.TotalChunks, 1)
	for _, c := range output.Chunks {
		assert.LessOrEqual(t, c.Tokens, 5)
	}
}

func TestCountUsesConfiguredTokenizer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartchunk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk:\n  limit: 10\n"), 0o600))
	out, err := run(t, "", "--config", path, "count", "--text", "hello world")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestCountHttpSource(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.UserAgent()
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "hello world")
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "smartchunk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  user_agent: smartchunk-test\n  http_timeout: 10s\n"), 0o600))
	out, err := run(t, "", "--config", path, "count", srv.URL+"/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
	assert.Equal(t, "smartchunk-test", agent)
}

func TestCount(t *testing.T) {
	out, err := run(t, "", "count", "--text", "hello world")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, err = run(t, "<b>hello</b> world", "count", "--normalize")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestInfo(t *testing.T) {
	out, err := run(t, "", "info", "--init")
	require.NoError(t, err)
	assert.Contains(t, out, "service: SmartChunker")
	assert.Contains(t, out, "status: initialized")
	assert.Contains(t, out, "encoding: cl100k_base")
	assert.Contains(t, out, "limit: 200")

	out, err = run(t, "", "info", "--config-only")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "chunk:"), out)
	assert.NotContains(t, out, "service:")
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartchunk.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk:\n  limit: 77\n"), 0o600))
	out, err := run(t, "", "--config", path, "info", "--config-only")
	require.NoError(t, err)
	assert.Contains(t, out, "limit: 77")

	_, err = run(t, "", "--config", filepath.Join(t.TempDir(), "none.yaml"), "info")
	assert.ErrorContains(t, err, "failed to load config")
}

func TestExecuteExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, Execute([]string{"--log-level", "error", "count", "--text", "hello"}, &stdout, &stderr))
	assert.Equal(t, "1\n", stdout.String())
	assert.Equal(t, 1, Execute([]string{"no-such-command"}, &stdout, &stderr))
}
