package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/assonuovavita/sitegen/internal/platform"
	"github.com/assonuovavita/sitegen/pkg/adapters/lifecycle"
	"github.com/assonuovavita/sitegen/pkg/core"
)

var watchOut string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the site whenever a content file changes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadProject()
		if err != nil {
			fatal("Error loading config", err)
		}
		out := outputs{Dir: cfg.Output.Dir, HTML: cfg.Output.HTML, Manifest: cfg.Output.Manifest}
		if cmd.Flags().Changed("out") {
			out.Dir = watchOut
		}

		service, err := newService(cfg, platform.WithWatcherErrorHandler(func(err error) {
			slog.Warn("watcher error", "error", err)
		}))
		if err != nil {
			fatal("Error initializing sitegen", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rebuild(ctx, service, out, "initial")

		events, err := service.Watch(ctx, cfg.Watch.Pattern)
		if err != nil {
			fatal("Error starting watcher", err)
		}
		source := lifecycle.NewSource(events)
		if err := source.Start(ctx); err != nil {
			fatal("Error starting watcher", err)
		}

		slog.Info("watching for changes", "roots", cfg.Content.Roots, "pattern", cfg.Watch.Pattern)
		for e := range source.Events() {
			batch, ok := e.(lifecycle.Batch)
			if !ok {
				continue
			}
			slog.Info("content changed", "changes", len(batch.Events), "paths", batch.Paths())
			rebuild(ctx, service, out, batch.String())
		}
		slog.Info("watcher stopped")
	},
}

// rebuild runs one build. A failure is logged and the previous output stays in place.
func rebuild(ctx context.Context, service *core.Service, out outputs, trigger string) {
	start := time.Now()
	result, err := buildSite(ctx, service, out)
	if err != nil {
		slog.Error("rebuild failed, keeping previous output", "trigger", trigger, "error", err)
		return
	}
	slog.Info("site rebuilt",
		"trigger", trigger,
		"routes", result.Site.Routes.Len(),
		"duration", time.Since(start),
	)
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output directory (default from config: public)")
	rootCmd.AddCommand(watchCmd)
}
