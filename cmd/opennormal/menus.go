package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/opennormal/internal/presentation/tui"
	"github.com/aretw0/opennormal/pkg/trigger"
	"github.com/spf13/cobra"
)

var menusCmd = &cobra.Command{
	Use:   "menus",
	Short: "Print the context menu entries registered at startup",
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(trigger.Menus()); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
		tui.NewPrinter(os.Stdout).Menus(trigger.Menus())
	},
}

func init() {
	rootCmd.AddCommand(menusCmd)
	menusCmd.Flags().Bool("json", false, "Print as JSON")
}
