package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
)

var (
	buildOut      string
	buildHTML     bool
	buildManifest bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Validate all content and write the site",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadProject()
		if err != nil {
			fatal("Error loading config", err)
		}

		out := outputs{Dir: cfg.Output.Dir, HTML: cfg.Output.HTML, Manifest: cfg.Output.Manifest}
		if cmd.Flags().Changed("out") {
			out.Dir = buildOut
		}
		if cmd.Flags().Changed("html") {
			out.HTML = buildHTML
		}
		if cmd.Flags().Changed("manifest") {
			out.Manifest = buildManifest
		}

		service, err := newService(cfg)
		if err != nil {
			fatal("Error initializing sitegen", err)
		}

		result, err := buildSite(context.Background(), service, out)
		if err != nil {
			fatal("Build failed", err)
		}

		slog.Info("build complete",
			"routes", result.Site.Routes.Len(),
			"nav_items", len(result.Site.Navigation),
			"pages_written", result.Pages,
			"out", out.Dir,
		)
		if result.Manifest != "" {
			slog.Info("manifest written", "path", result.Manifest)
		}
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory (default from config: public)")
	buildCmd.Flags().BoolVar(&buildHTML, "html", true, "write HTML pages")
	buildCmd.Flags().BoolVar(&buildManifest, "manifest", true, "write routes.json")
	rootCmd.AddCommand(buildCmd)
}
