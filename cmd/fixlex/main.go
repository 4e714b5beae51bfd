package main

import (
	"os"

	"github.com/danmuck/fixlex/internal/config"
	"github.com/danmuck/fixlex/internal/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "fixlex",
		Short:         "Incremental TAG=VALUE field parser for FIX-style messages",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to fixlex.toml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level")

	rootCmd.AddCommand(newParseCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

// load resolves configuration and applies the effective log level.
func (o *rootOptions) load() (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	logging.ConfigureRuntime()
	logging.ApplyLevel(logging.ProfileRuntime, cfg.LogLevel)
	return cfg, nil
}
