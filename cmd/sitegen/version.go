package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assonuovavita/sitegen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sitegen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sitegen version %s\n", strings.TrimSpace(sitegen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
