package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/opennormal"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of opennormal",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("opennormal version %s\n", strings.TrimSpace(opennormal.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
