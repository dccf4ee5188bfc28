// Package render turns a built site into HTML pages.
package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goodsign/monday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/sync/errgroup"

	"github.com/assonuovavita/sitegen/pkg/adapters/fs"
	"github.com/assonuovavita/sitegen/pkg/core"
)

// ErrUnknownTemplate is returned for a route whose template has no renderer.
var ErrUnknownTemplate = errors.New("render: unknown template")

// ErrOutputConflict is returned when distinct slugs map to the same output file.
var ErrOutputConflict = errors.New("render: slugs share an output file")

//go:embed templates/*.html
var templateFS embed.FS

var componentTemplates = template.Must(template.New("components").ParseFS(templateFS, "templates/components.html"))

// Renderer renders routes with the page templates and the component registry.
type Renderer struct {
	info       core.SiteInfo
	md         goldmark.Markdown
	components *Registry
	pages      map[core.Template]*template.Template
	locale     monday.Locale
	logger     *slog.Logger
	now        func() time.Time
	workers    int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRegistry replaces the default component registry.
func WithRegistry(r *Registry) Option {
	return func(rd *Renderer) { rd.components = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(rd *Renderer) { rd.logger = l }
}

// WithClock sets the time source used for the footer year.
func WithClock(now func() time.Time) Option {
	return func(rd *Renderer) { rd.now = now }
}

// WithWorkers bounds how many pages RenderSite renders at once.
func WithWorkers(n int) Option {
	return func(rd *Renderer) { rd.workers = n }
}

// New builds a Renderer for info.
func New(info core.SiteInfo, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		info:   info,
		locale: localeFor(info.Language),
		logger: slog.Default(),
		now:    time.Now,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.components == nil {
		r.components = DefaultRegistry(r.locale)
	}

	r.pages = make(map[core.Template]*template.Template, len(core.Templates))
	for _, name := range core.Templates {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+string(name)+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

type pageData struct {
	Site       core.SiteInfo
	Head       core.Head
	Route      core.Route
	Navigation []core.NavigationItem
	Body       template.HTML
	Date       string
	Year       int
}

// Render produces the complete HTML document for route.
func (r *Renderer) Render(route core.Route, nav []core.NavigationItem) ([]byte, error) {
	page, ok := r.pages[route.Template]
	if !ok {
		return nil, fmt.Errorf("%w: %q (route %s)", ErrUnknownTemplate, route.Template, route.Slug)
	}

	body, err := r.Body(route.Body)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", route.Source, err)
	}

	var buf bytes.Buffer
	err = page.ExecuteTemplate(&buf, "layout.html", pageData{
		Site:       r.info,
		Head:       r.info.Head(route.Metadata),
		Route:      route,
		Navigation: nav,
		Body:       body,
		Date:       formatDate(route.Metadata.Date, r.locale),
		Year:       r.now().Year(),
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", route.Source, err)
	}
	return buf.Bytes(), nil
}

// Body converts a markdown body with inline components to HTML.
func (r *Renderer) Body(markdown string) (template.HTML, error) {
	src, code := protectCode(stripImports(markdown))
	src, components, err := extractComponents(src)
	if err != nil {
		return "", err
	}

	rendered := make([]template.HTML, len(components))
	for i, c := range components {
		component, ok := r.components.Get(c.Name)
		if !ok {
			return "", fmt.Errorf("%w: <%s>", ErrUnknownComponent, c.Name)
		}

		var children template.HTML
		if strings.TrimSpace(c.Inner) != "" {
			children, err = r.markdown(dedent(restoreCode(c.Inner, code)), rendered[:i])
			if err != nil {
				return "", err
			}
		}
		rendered[i], err = component(c.Props, children)
		if err != nil {
			return "", err
		}
	}

	return r.markdown(restoreCode(src, code), rendered)
}

// markdown converts src and splices in the rendered components it references.
func (r *Renderer) markdown(src string, rendered []template.HTML) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	out := buf.String()
	for i := len(rendered) - 1; i >= 0; i-- {
		out = strings.ReplaceAll(out, placeholder(i), string(rendered[i]))
	}
	return template.HTML(out), nil
}

// RenderSite writes every route of site under outDir and returns the number
// of pages written. Nothing is written until every page has rendered.
func (r *Renderer) RenderSite(ctx context.Context, site *core.Site, outDir string) (int, error) {
	routes := site.Routes.All()
	targets, err := outputTargets(outDir, routes)
	if err != nil {
		return 0, err
	}

	pages := make([][]byte, len(routes))
	g, gctx := errgroup.WithContext(ctx)
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}
	for i, route := range routes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			html, err := r.Render(route, site.Navigation)
			if err != nil {
				return err
			}
			pages[i] = html
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	g, gctx = errgroup.WithContext(ctx)
	if r.workers > 0 {
		g.SetLimit(r.workers)
	}
	for i, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fs.WriteFileAtomic(target, pages[i], 0o644); err != nil {
				return err
			}
			r.logger.Debug("page written", "slug", routes[i].Slug, "path", target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(routes), nil
}

// outputTargets maps each route to its file and fails when two routes share one.
func outputTargets(outDir string, routes []core.Route) ([]string, error) {
	targets := make([]string, len(routes))
	owners := make(map[string][]core.Route, len(routes))
	var order []string
	for i, route := range routes {
		target := OutputPath(outDir, route.Slug)
		targets[i] = target
		if _, seen := owners[target]; !seen {
			order = append(order, target)
		}
		owners[target] = append(owners[target], route)
	}

	var conflicts []string
	for _, target := range order {
		if len(owners[target]) < 2 {
			continue
		}
		names := make([]string, len(owners[target]))
		for i, route := range owners[target] {
			names[i] = fmt.Sprintf("%s (%s)", route.Source, route.Slug)
		}
		conflicts = append(conflicts, fmt.Sprintf("%s: %s", target, strings.Join(names, ", ")))
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrOutputConflict, strings.Join(conflicts, "; "))
	}
	return targets, nil
}

// OutputPath maps a slug to its index.html under outDir.
func OutputPath(outDir, slug string) string {
	trimmed := strings.Trim(slug, "/")
	if trimmed == "" {
		return filepath.Join(outDir, "index.html")
	}
	return filepath.Join(outDir, filepath.FromSlash(trimmed), "index.html")
}

func formatDate(d core.Date, locale monday.Locale) string {
	if d.IsZero() {
		return ""
	}
	return monday.Format(d.Time(), "2 January 2006", locale)
}

func localeFor(lang string) monday.Locale {
	switch strings.ToLower(lang) {
	case "en":
		return monday.LocaleEnUS
	case "fr":
		return monday.LocaleFrFR
	case "de":
		return monday.LocaleDeDE
	case "es":
		return monday.LocaleEsES
	default:
		return monday.LocaleItIT
	}
}
