package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var navJSON bool

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Print the navigation menu in display order",
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

		site, err := service.Build(context.Background())
		if err != nil {
			fatal("Build failed", err)
		}

		if navJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(site.Navigation); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, item := range site.Navigation {
			order := "-"
			if item.Order != nil {
				order = strconv.Itoa(*item.Order)
			}
			fmt.Printf("%3s  %-30s %s\n", order, item.Label, item.Href)
		}
	},
}

func init() {
	navCmd.Flags().BoolVar(&navJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(navCmd)
}
