// Package core holds the content pipeline: documents, the frontmatter schema,
// and the derivation of routes and navigation.
package core

import (
	"fmt"
	"time"
)

// Metadata represents the loosely typed key-value pairs of a frontmatter block.
type Metadata map[string]any

// Document is one discovered content unit.
// Body is opaque to the pipeline and handed to the renderer untouched.
type Document struct {
	SourcePath string
	Body       string
	Metadata   Metadata
}

// Template selects the layout a route is rendered with.
type Template string

const (
	TemplatePage        Template = "page"
	TemplateLandingPage Template = "landing-page"
)

// Templates lists every known template, in declaration order.
var Templates = []Template{TemplatePage, TemplateLandingPage}

// ParseTemplate converts a frontmatter value into a Template.
func ParseTemplate(name string) (Template, error) {
	for _, t := range Templates {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown template %q", name)
}

func (t Template) String() string { return string(t) }

// DateLayout is the canonical calendar-date layout of frontmatter dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without clock or zone.
type Date struct {
	t time.Time
}

// NewDate returns the Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// DateOf truncates t to its calendar day, in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PageMetadata is the validated, normalized form of a document's frontmatter.
type PageMetadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Date        Date     `json:"date"`
	Template    Template `json:"template"`
	ShowInNav   bool     `json:"showInNav"`
	NavOrder    *int     `json:"navOrder,omitempty"`
	MetaImage   string   `json:"metaImage,omitempty"`
}

// Frontmatter returns the canonical raw form of m.
// Validating a document carrying it yields m again.
func (m PageMetadata) Frontmatter() Metadata {
	raw := Metadata{
		FieldTitle:       m.Title,
		FieldDescription: m.Description,
		FieldSlug:        m.Slug,
		FieldDate:        m.Date.String(),
		FieldTemplate:    string(m.Template),
		FieldShowInNav:   m.ShowInNav,
	}
	if m.NavOrder != nil {
		raw[FieldNavOrder] = *m.NavOrder
	}
	if m.MetaImage != "" {
		raw[FieldMetaImage] = m.MetaImage
	}
	return raw
}

// Page pairs a document with its validated metadata.
type Page struct {
	Document Document
	Meta     PageMetadata
}

// Route is what the renderer receives for one page.
type Route struct {
	Slug     string       `json:"slug"`
	Template Template     `json:"template"`
	Metadata PageMetadata `json:"metadata"`
	Body     string       `json:"-"`
	Source   string       `json:"source"`
}

// NavigationItem is one menu link.
type NavigationItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Order *int   `json:"order,omitempty"`
}

// SiteInfo carries the fixed site-wide values used for head tags.
type SiteInfo struct {
	Title    string `json:"title" mapstructure:"title"`
	Origin   string `json:"origin" mapstructure:"origin"`
	Language string `json:"language" mapstructure:"language"`
}

// Site is the output of one build.
type Site struct {
	Info       SiteInfo
	Routes     *RouteTable
	Navigation []NavigationItem
}

// EventType represents the type of change under a content root.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a content file.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
