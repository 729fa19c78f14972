package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bububa/smart-chunker/components/chunker"
	"github.com/bububa/smart-chunker/config"
)

type infoOutput struct {
	chunker.ServiceInfo `yaml:",inline"`
	Config              *config.Config `yaml:"config"`
}

func newInfoCommand(a *app) *cobra.Command {
	var (
		initialize bool
		configOnly bool
	)
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show tokenizer status, features and effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configOnly {
				bs, err := a.cfg.Marshal()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(bs)
				return err
			}
			if initialize {
				if err := a.initTokenizer(); err != nil {
					return err
				}
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(infoOutput{
				ServiceInfo: chunker.Info(a.tke),
				Config:      a.cfg,
			}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().BoolVar(&initialize, "init", false, "initialize the tokenizer before reporting")
	cmd.Flags().BoolVar(&configOnly, "config-only", false, "print only the effective config")
	return cmd
}
