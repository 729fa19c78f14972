package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bububa/smart-chunker/components/chunker"
	"github.com/bububa/smart-chunker/components/document"
	"github.com/bububa/smart-chunker/components/normalizer"
)

func newCountCommand(a *app) *cobra.Command {
	var (
		text      string
		source    string
		normalize bool
	)
	cmd := &cobra.Command{
		Use:   "count [source]",
		Short: "Count the tokens of text from a flag, a source or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				source = args[0]
			}
			content, err := a.readInput(cmd.Context(), text, source, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if normalize {
				content = normalizer.Normalize(content)
			}
			if err := a.initTokenizer(); err != nil {
				return err
			}
			c, err := chunker.New(a.chunkerOptions()...)
			if err != nil {
				return err
			}
			n, err := c.TokenCount(content)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}
	cmd.Flags().StringVarP(&text, "text", "t", "", "text to count")
	cmd.Flags().StringVarP(&source, "source", "s", "", "file path, http(s) url or s3://bucket/key to count")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "normalize the text before counting, as chunking does")
	return cmd
}

// readInput returns text, the extracted text of source, or stdin
func (a *app) readInput(ctx context.Context, text string, source string, stdin io.Reader) (string, error) {
	if text != "" && source != "" {
		return "", fmt.Errorf("--text and a source are mutually exclusive")
	}
	if text != "" {
		return text, nil
	}
	if source == "" {
		bs, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(bs), nil
	}
	doc, err := document.Load(ctx, source, a.loadOptions()...)
	if err != nil {
		return "", err
	}
	return a.registry().Extract(ctx, doc)
}
