package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/assonuovavita/sitegen/internal/manifest"
	"github.com/assonuovavita/sitegen/internal/platform"
	"github.com/assonuovavita/sitegen/internal/render"
	"github.com/assonuovavita/sitegen/pkg/adapters/fs"
	"github.com/assonuovavita/sitegen/pkg/core"
)

// loadProject reads the configuration of the project containing the working directory.
func loadProject() (platform.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return platform.Config{}, fmt.Errorf("getting working directory: %w", err)
	}

	base := wd
	if configPath == "" {
		if root, err := platform.FindRoot(wd); err == nil {
			base = root
		} else if !errors.Is(err, platform.ErrRootNotFound) {
			return platform.Config{}, err
		}
	}

	cfg, used, err := platform.LoadConfig(configPath, base)
	if err != nil {
		return platform.Config{}, err
	}
	if used != "" {
		slog.Debug("using config file", "path", used)
	} else {
		slog.Debug("no config file found, using defaults", "base", base)
	}
	return cfg, nil
}

func newService(cfg platform.Config, extra ...platform.Option) (*core.Service, error) {
	opts := append(cfg.Options(), platform.WithLogger(slog.Default()))
	return platform.New(append(opts, extra...)...)
}

// outputs selects what a build writes.
type outputs struct {
	Dir      string
	HTML     bool
	Manifest bool
}

// buildResult summarizes one build.
type buildResult struct {
	Site     *core.Site
	Pages    int
	Manifest string
}

// buildSite runs the pipeline once and writes the selected outputs. Nothing
// is written unless the whole site validates, the manifest encodes and every
// page renders.
func buildSite(ctx context.Context, svc *core.Service, out outputs) (*buildResult, error) {
	site, err := svc.Build(ctx)
	if err != nil {
		return nil, err
	}
	result := &buildResult{Site: site}

	var manifestData []byte
	if out.Manifest {
		manifestData, err = manifest.Encode(manifest.Build(site))
		if err != nil {
			return nil, err
		}
	}

	if out.HTML {
		renderer, err := render.New(site.Info, render.WithLogger(slog.Default()))
		if err != nil {
			return nil, err
		}
		result.Pages, err = renderer.RenderSite(ctx, site, out.Dir)
		if err != nil {
			return nil, err
		}
	}

	if out.Manifest {
		result.Manifest = filepath.Join(out.Dir, manifest.FileName)
		if err := fs.WriteFileAtomic(result.Manifest, manifestData, 0o644); err != nil {
			return nil, err
		}
	}
	return result, nil
}
