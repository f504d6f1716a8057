package main

import (
	"os"

	"github.com/huangang/sitecraft/internal/config"
	"github.com/huangang/sitecraft/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "server",
		Short:         "Sitecraft website builder backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "config file (default config.yaml, or CONFIG_PATH)")

	load := func() (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		logger.Init(cfg.Log.Level)
		return cfg, nil
	}

	root.AddCommand(
		newServeCmd(load),
		newExportCmd(load),
		newTokenCmd(load),
	)
	return root
}
