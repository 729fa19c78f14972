// Package cli implements the smartchunk command line.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bububa/smart-chunker/components/tokenizer"
	"github.com/bububa/smart-chunker/config"
	"github.com/bububa/smart-chunker/internal/logging"
)

// app holds state shared by the subcommands after PersistentPreRunE
type app struct {
	cfgFile  string
	logLevel string
	cfg      *config.Config
	logger   *zap.Logger
	tke      *tokenizer.TikToken
}

// NewRootCommand builds the smartchunk command tree
func NewRootCommand() *cobra.Command {
	a := new(app)
	rootCmd := &cobra.Command{
		Use:   "smartchunk",
		Short: "Split text into token-bounded, overlapping chunks",
		Long: `smartchunk cuts text into chunks of at most a given number of tokens,
respecting sentence boundaries where possible and repeating the tail of each
chunk at the head of the next.

Example usage:
  smartchunk chunk --text "First sentence. Second sentence."
  smartchunk chunk --source report.pdf --limit 300 --overlap 30
  smartchunk count --text "hello world"
  smartchunk info`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides config)")
	rootCmd.AddCommand(
		newChunkCommand(a),
		newCountCommand(a),
		newInfoCommand(a),
	)
	return rootCmd
}

// Execute runs the command line with args and returns the process exit code
func Execute(args []string, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if cfg.Tokenizer.Encoding == tokenizer.DefaultEncoding {
		a.tke = tokenizer.Default()
	} else {
		a.tke = tokenizer.New(tokenizer.WithEncoding(cfg.Tokenizer.Encoding))
	}
	return nil
}

// initTokenizer loads the BPE table; commands that tokenize call it first
func (a *app) initTokenizer() error {
	if err := a.tke.Initialize(); err != nil {
		a.logger.Error("tokenizer initialization failed", zap.Error(err))
		return err
	}
	return nil
}
