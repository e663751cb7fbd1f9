package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/opennormal/internal/cli"
	"github.com/aretw0/opennormal/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "opennormal",
	Short: "Open links in the normal browser through a native messaging host",
	Long: `opennormal checks candidate URLs against the open-normal admission rules
and relays accepted ones to the "fi.ssrc.open_normal" native messaging host.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "Path to the YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}

// setup loads configuration and the logger shared by every command.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logger, err := cli.NewLogger(cfg, debug, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
	return cfg, logger
}
