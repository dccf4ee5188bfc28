package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var routesJSON bool

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the route table",
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

		routes := site.Routes.All()
		if routesJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(routes); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SLUG\tTEMPLATE\tTITLE\tSOURCE")
		for _, r := range routes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Slug, r.Template, r.Metadata.Title, r.Source)
		}
		w.Flush()
	},
}

func init() {
	routesCmd.Flags().BoolVar(&routesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(routesCmd)
}
