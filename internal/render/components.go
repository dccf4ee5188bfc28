package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goodsign/monday"

	"github.com/assonuovavita/sitegen/pkg/core"
)

var (
	// ErrUnknownComponent is returned for a capitalized tag with no registered component.
	ErrUnknownComponent = errors.New("render: unknown component")
	// ErrDuplicateComponent is returned when a name is registered twice.
	ErrDuplicateComponent = errors.New("render: duplicate component")
	// ErrInvalidProps wraps prop validation failures.
	ErrInvalidProps = errors.New("render: invalid component props")
)

// Props are the attributes of a component tag.
type Props map[string]string

// Bool reports whether key is set to "true".
func (p Props) Bool(key string) bool {
	v, _ := strconv.ParseBool(p[key])
	return v
}

func (p Props) values() map[string]interface{} {
	m := make(map[string]interface{}, len(p))
	for k, v := range p {
		m[k] = v
	}
	return m
}

// Component renders one tag. children is the already rendered inner content.
type Component func(props Props, children template.HTML) (template.HTML, error)

// Registry maps tag names to components.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Component
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]Component)}
}

// DefaultRegistry returns a registry holding Button, Card, Hero and DocumentLink.
func DefaultRegistry(locale monday.Locale) *Registry {
	r := NewRegistry()
	_ = r.Register("Button", Button)
	_ = r.Register("Card", Card)
	_ = r.Register("Hero", Hero)
	_ = r.Register("DocumentLink", DocumentLinkFor(locale))
	return r
}

// Register stores c under name.
func (r *Registry) Register(name string, c Component) error {
	name = strings.TrimSpace(name)
	if name == "" || c == nil {
		return fmt.Errorf("render: invalid component %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.components[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, name)
	}
	r.components[name] = c
	return nil
}

// Get returns the component registered under name.
func (r *Registry) Get(name string) (Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Names lists registered components in name order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func validateProps(component string, props Props, rules ...*validation.KeyRules) error {
	err := validation.Validate(props.values(), validation.Map(rules...).AllowExtraKeys())
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidProps, component, err)
	}
	return nil
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := componentTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Button renders an internal link, an external link or a plain button.
func Button(props Props, children template.HTML) (template.HTML, error) {
	err := validateProps("Button", props,
		validation.Key("variant", validation.In("primary", "secondary", "outline")).Optional(),
	)
	if err != nil {
		return "", err
	}

	variant := props["variant"]
	if variant == "" {
		variant = "primary"
	}
	href := props["href"]
	external := props.Bool("external")

	return execute("component-button", map[string]any{
		"Href":     href,
		"Variant":  variant,
		"External": external,
		"Internal": href != "" && !external && strings.HasPrefix(href, "/"),
		"Label":    unwrapParagraph(children),
	})
}

// Card renders a content box with optional image, title and link.
func Card(props Props, children template.HTML) (template.HTML, error) {
	var rules []*validation.KeyRules
	if props["image"] != "" {
		rules = append(rules, validation.Key("imageAlt", validation.Required.Error("is required when image is set")))
	}
	if err := validateProps("Card", props, rules...); err != nil {
		return "", err
	}

	return execute("component-card", map[string]any{
		"Title":    props["title"],
		"Image":    props["image"],
		"ImageAlt": props["imageAlt"],
		"Href":     props["href"],
		"Body":     children,
	})
}

// Hero renders the prominent page-top section.
func Hero(props Props, children template.HTML) (template.HTML, error) {
	err := validateProps("Hero", props,
		validation.Key("title", validation.Required),
	)
	if err != nil {
		return "", err
	}

	var style template.CSS
	if bg := props["backgroundImage"]; bg != "" {
		style = template.CSS("background-image: url(" + strconv.Quote(bg) + ")")
	}
	return execute("component-hero", map[string]any{
		"Title":       props["title"],
		"Description": props["description"],
		"Style":       style,
		"Actions":     children,
	})
}

// DocumentLinkFor returns the downloadable-document component, formatting
// dates in locale.
func DocumentLinkFor(locale monday.Locale) Component {
	return func(props Props, _ template.HTML) (template.HTML, error) {
		err := validateProps("DocumentLink", props,
			validation.Key("title", validation.Required),
			validation.Key("href", validation.Required),
		)
		if err != nil {
			return "", err
		}

		date := props["date"]
		if d, err := core.ParseDate(date); err == nil {
			date = formatDate(d, locale)
		}
		return execute("component-document-link", map[string]any{
			"Title":       props["title"],
			"Description": props["description"],
			"Href":        props["href"],
			"Extension":   fileExtension(props["href"]),
			"FileSize":    props["fileSize"],
			"Date":        date,
		})
	}
}

func fileExtension(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	ext := strings.TrimPrefix(path.Ext(href), ".")
	if ext == "" {
		return "FILE"
	}
	return strings.ToUpper(ext)
}

// unwrapParagraph removes the single <p> goldmark puts around inline text.
func unwrapParagraph(h template.HTML) template.HTML {
	s := strings.TrimSpace(string(h))
	if strings.HasPrefix(s, "<p>") && strings.HasSuffix(s, "</p>") && strings.Count(s, "<p>") == 1 {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "<p>"), "</p>")
	}
	return template.HTML(s)
}
