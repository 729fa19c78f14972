package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bububa/smart-chunker/components/chunker"
	chunktool "github.com/bububa/smart-chunker/tools/chunker"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func newChunkCommand(a *app) *cobra.Command {
	var (
		id      string
		text    string
		source  string
		limit   int
		overlap int
		format  string
	)
	cmd := &cobra.Command{
		Use:   "chunk [source]",
		Short: "Chunk text from a flag, a source or stdin",
		Long: `Chunk text given with --text, loaded from a source (file path, http(s) url
or s3://bucket/key) or read from stdin when neither is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if source != "" {
					return fmt.Errorf("source given both as argument and --source")
				}
				source = args[0]
			}
			if text != "" && source != "" {
				return fmt.Errorf("--text and a source are mutually exclusive")
			}
			if text == "" && source == "" {
				bs, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				text = string(bs)
			}
			if err := a.initTokenizer(); err != nil {
				return err
			}
			input := &chunktool.Input{
				ID:     id,
				Text:   text,
				Source: source,
			}
			if cmd.Flags().Changed("limit") {
				input.ChunkTokenLimit = limit
				if limit <= 0 {
					return fmt.Errorf("%w: limit must be positive, got %d", chunker.ErrInvalidInput, limit)
				}
			}
			if cmd.Flags().Changed("overlap") {
				input.OverlapTokens = &overlap
			}
			output, err := a.chunkTool().Run(cmd.Context(), input)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, output)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "request id (generated when empty)")
	cmd.Flags().StringVarP(&text, "text", "t", "", "text to chunk")
	cmd.Flags().StringVarP(&source, "source", "s", "", "file path, http(s) url or s3://bucket/key to chunk")
	cmd.Flags().IntVarP(&limit, "limit", "l", chunker.DefaultLimit, "maximum tokens per chunk (default from config)")
	cmd.Flags().IntVarP(&overlap, "overlap", "o", chunker.DefaultOverlap, "tokens repeated from the previous chunk (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, yaml or text")
	return cmd
}

func (a *app) chunkTool() *chunktool.Tool {
	return chunktool.New(
		chunktool.WithChunkerOptions(a.chunkerOptions()...),
		chunktool.WithLoadOptions(a.loadOptions()...),
		chunktool.WithRegistry(a.registry()),
		chunktool.WithLogger(a.logger),
	)
}

// chunkerOptions are the config's chunk settings on the app tokenizer
func (a *app) chunkerOptions() []chunker.Option {
	return append(a.cfg.ChunkerOptions(), chunker.WithTokenizer(a.tke), chunker.WithLogger(a.logger))
}

func writeOutput(w io.Writer, format string, output *chunktool.Output) error {
	switch strings.ToLower(format) {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(output); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		for _, c := range output.Chunks {
			if _, err := fmt.Fprintf(w, "--- chunk %d (%d tokens)\n%s\n", c.Index, c.Tokens, c.Text); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "--- %d chunks, %d tokens\n", output.TotalChunks, output.TotalTokens)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
