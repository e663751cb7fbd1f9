package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/opennormal/internal/cli"
	"github.com/aretw0/opennormal/pkg/domain"
	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Process trigger events as JSON lines on stdin",
	Long: `Reads one browser-shaped trigger event per line, e.g.

  {"type":"contextMenus.onClicked","info":{"menuItemId":"openNormalLink","linkUrl":"https://example.org"}}

and writes one JSON result per line to stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup(cmd)

		ext, err := cli.NewExtension(cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing opennormal: %v\n", err)
			os.Exit(1)
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		err = cli.Listen(sc, ext, os.Stdin, os.Stdout, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			sc.Cancel()
			os.Exit(1)
		}
		logger.Debug("Listen stopped", "signal", sc.Signal())
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}
