package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/opennormal/internal/cli"
	"github.com/aretw0/opennormal/internal/presentation/tui"
	"github.com/aretw0/opennormal/pkg/domain"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Open a URL in the normal browser",
	Long:  `Admits the URL and sends it to the native messaging host, printing the host's response.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup(cmd)
		timeout, _ := cmd.Flags().GetDuration("timeout")

		ext, err := cli.NewExtension(cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing opennormal: %v\n", err)
			os.Exit(1)
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		ctx := context.Context(sc)
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		res := ext.Open(ctx, args[0])
		tui.NewPrinter(os.Stdout).Result(res)
		if res.State != domain.StateSucceeded {
			sc.Cancel()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().Duration("timeout", 0, "Give up waiting for the host after this long (0 waits indefinitely)")
}
