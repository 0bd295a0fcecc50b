package main

import (
	"github.com/aleister1102/pagewatch/internal/config"
	"github.com/aleister1102/pagewatch/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pagewatch",
		Short: "Get notified when the text of a web page changes",
		Long: `pagewatch periodically fetches a set of web pages, compares their visible
text with the previously fetched version and sends a notification for every
change, first capture or fetch failure.

Usage:
  pagewatch run      [--config path]
  pagewatch check    [--config path] [--page name]...
  pagewatch validate [--config path]
  pagewatch history  [--config path] --page name`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"Path to the YAML/JSON configuration file (default: $"+config.ConfigPathEnvVar+", then config.yaml/config.json)")

	cmd.AddCommand(
		newRunCmd(opts),
		newCheckCmd(opts),
		newValidateCmd(opts),
		newHistoryCmd(opts),
	)
	return cmd
}

// loadConfig loads and validates the configuration and builds the logger.
func (o *rootOptions) loadConfig() (*config.GlobalConfig, zerolog.Logger, error) {
	cfg, err := config.LoadGlobalConfig(o.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, zerolog.Nop(), err
	}

	log, err := logger.New(cfg.LogConfig)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}
