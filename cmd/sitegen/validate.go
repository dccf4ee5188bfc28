package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every content file against the page schema",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadProject()
		if err != nil {
			fatal("Error loading config", err)
		}

		service, err := newService(cfg)
		if err != nil {
			fatal("Error initializing sitegen", err)
		}

		pages, err := service.Validate(context.Background())
		if err != nil {
			fatal("Validation failed", err)
		}
		fmt.Printf("%d pages valid\n", len(pages))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
