// Command drawgallery runs the drawing gallery server and offers maintenance
// commands that work on the same image directory.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/eringen/drawgallery"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "drawgallery",
		Short: "A canvas drawing editor with a small image gallery API",
		Long: `drawgallery serves a browser drawing editor and stores the drawings as PNG
files with a name and price in a metadata index.

Examples:
  drawgallery serve
  drawgallery serve --config /etc/drawgallery.yaml
  drawgallery list --json
  drawgallery reset --yes`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "drawgallery.yaml", "path to the YAML config file")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newListCmd(&configPath))
	root.AddCommand(newResetCmd(&configPath))
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads the config and installs the process logger.
func setup(configPath string) (drawgallery.Config, zerolog.Logger, error) {
	cfg, err := drawgallery.LoadConfig(configPath)
	if err != nil {
		return drawgallery.Config{}, zerolog.Nop(), err
	}
	logger := drawgallery.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	log.Logger = logger
	return cfg, logger, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the drawgallery version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "drawgallery %s\n", version)
		},
	}
}
