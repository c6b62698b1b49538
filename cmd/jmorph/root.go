package main

import (
	"errors"

	"github.com/npillmayer/jmorph/internal/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// tracer traces to jmorph.cli .
func tracer() tracing.Trace {
	return tracing.Select("jmorph.cli")
}

var (
	cfgFile   string
	activeCfg *config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           "jmorph",
		Short:         "Japanese morphological analysis",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := loaded.SetupTracing(); err != nil {
				return err
			}
			activeCfg = &loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newInfoCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func requireConfig() (config.Config, error) {
	if activeCfg == nil {
		return config.Config{}, errors.New("configuration not loaded")
	}
	return *activeCfg, nil
}
