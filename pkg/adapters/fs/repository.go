package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/assonuovavita/sitegen/pkg/core"
)

const (
	DefaultConcurrency = 8
	DefaultEventBuffer = 100
)

// DefaultExtensions are the recognized content file extensions.
var DefaultExtensions = []string{".md", ".mdx"}

// Repository implements core.Source over one or more content directories.
type Repository struct {
	config      Config
	serializers map[string]Serializer

	mu            sync.RWMutex
	watcherActive bool
	lastDiscover  *time.Time
	lastCount     int
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Roots        []string              // content directories, scanned in full
	Extensions   []string              // recognized extensions, e.g. ".md"
	Ignore       []string              // doublestar globs, matched against root-relative slash paths
	Concurrency  int                   // parallel file reads
	EventBuffer  int                   // watch channel size
	Logger       *slog.Logger
	ErrorHandler func(error)           // watcher runtime errors
	Serializers  map[string]Serializer // overrides per extension
}

// NewRepository creates a new filesystem-backed content source.
func NewRepository(config Config) *Repository {
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultExtensions
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultEventBuffer
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	serializers := DefaultSerializers()
	for ext, s := range config.Serializers {
		serializers[normalizeExt(ext)] = s
	}
	exts := make([]string, len(config.Extensions))
	for i, ext := range config.Extensions {
		exts[i] = normalizeExt(ext)
	}
	config.Extensions = exts

	return &Repository{
		config:      config,
		serializers: serializers,
	}
}

// Initialize checks that every root is a readable directory and that every
// ignore pattern and extension is usable.
func (r *Repository) Initialize(ctx context.Context) error {
	if len(r.config.Roots) == 0 {
		return errors.New("no content roots configured")
	}
	for _, root := range r.config.Roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("content root %s: %w", root, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("content root %s is not a directory", root)
		}
	}
	for _, pattern := range r.config.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	for _, ext := range r.config.Extensions {
		if _, ok := r.serializers[ext]; !ok {
			return fmt.Errorf("no serializer registered for %s", ext)
		}
	}
	return nil
}

// Discover implements core.Source.
//
// Strategy:
//  1. Walk every root (skipping dot-directories and node_modules) and collect
//     recognized files, once per absolute path.
//  2. Sort the paths.
//  3. Parse files in parallel into a slice indexed by sorted position.
//  4. Report every parse error together, or return the documents.
func (r *Repository) Discover(ctx context.Context) ([]core.Document, error) {
	paths, err := r.scan(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]core.Document, len(paths))
	parseErrs := make([]error, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := r.parseFile(path)
			if err != nil {
				parseErrs[i] = err
				return nil
			}
			docs[i] = *doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var combined error
	for _, err := range parseErrs {
		combined = multierr.Append(combined, err)
	}
	if combined != nil {
		return nil, combined
	}

	r.mu.Lock()
	now := time.Now()
	r.lastDiscover = &now
	r.lastCount = len(docs)
	r.mu.Unlock()

	r.config.Logger.Debug("content scanned", "roots", len(r.config.Roots), "documents", len(docs))
	return docs, nil
}

func (r *Repository) scan(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, root := range r.config.Roots {
		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("content root %s: %w", root, err)
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return &core.ParseError{Path: filepath.ToSlash(path), Err: err}
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if !r.accepts(root, path) {
				return nil
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			if seen[abs] {
				return nil
			}
			seen[abs] = true
			files = append(files, filepath.ToSlash(path))
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func (r *Repository) parseFile(path string) (*core.Document, error) {
	s, ok := r.serializers[normalizeExt(filepath.Ext(path))]
	if !ok {
		return nil, &core.ParseError{Path: path, Err: errors.New("no serializer for extension")}
	}

	f, err := os.Open(filepath.FromSlash(path))
	if err != nil {
		return nil, &core.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := s.Parse(f)
	if err != nil {
		return nil, &core.ParseError{Path: path, Err: err}
	}
	doc.SourcePath = path
	return doc, nil
}

// accepts reports whether path is a recognized, non-ignored content file.
func (r *Repository) accepts(root, path string) bool {
	ext := normalizeExt(filepath.Ext(path))
	recognized := false
	for _, e := range r.config.Extensions {
		if e == ext {
			recognized = true
			break
		}
	}
	if !recognized {
		return false
	}
	return !r.ignored(root, path)
}

func (r *Repository) ignored(root, path string) bool {
	if len(r.config.Ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range r.config.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// rootOf returns the configured root containing path, preferring the deepest.
func (r *Repository) rootOf(path string) (string, bool) {
	best := ""
	for _, root := range r.config.Roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if len(root) > len(best) {
			best = root
		}
	}
	return best, best != ""
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
