package main

import (
	"fmt"
	"os"

	"github.com/aretw0/opennormal/internal/cli"
	"github.com/aretw0/opennormal/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var checkCmd = &cobra.Command{
	Use:   "check [url...]",
	Short: "Run URLs through the admission gate without opening them",
	Long: `Prints the admission verdict for each URL. Without arguments, URLs are read
one per line from standard input. Exits with status 1 if any URL is rejected.`,
	Run: func(cmd *cobra.Command, args []string) {
		candidates := args
		if len(candidates) == 0 {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				fmt.Fprintln(os.Stderr, "No URLs given: pass them as arguments or pipe them on stdin")
				os.Exit(2)
			}
			lines, err := cli.ReadLines(os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
				os.Exit(2)
			}
			candidates = lines
		}

		if rejected := cli.Check(candidates, tui.NewPrinter(os.Stdout)); rejected > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
