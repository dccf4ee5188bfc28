package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrParse           = errors.New("content could not be parsed")
	ErrSchemaViolation = errors.New("frontmatter violates the page schema")
	ErrSlugConflict    = errors.New("slug declared by more than one document")
	ErrNotWatchable    = errors.New("source does not support watching")
)

// ParseError reports a content file that could not be read or whose
// frontmatter is not a key/value mapping.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Violation is a single failed schema constraint.
type Violation struct {
	Source string `json:"source"`
	Field  string `json:"field"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	if v.Source == "" {
		return fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", v.Source, v.Field, v.Reason)
}

// SchemaError batches every violation found across a build.
type SchemaError struct {
	Violations []Violation
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d schema violation(s)", len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaViolation }

// Fields returns the violated field names for source, in report order.
func (e *SchemaError) Fields(source string) []string {
	var fields []string
	for _, v := range e.Violations {
		if v.Source == source {
			fields = append(fields, v.Field)
		}
	}
	return fields
}

// SlugConflict names every document that declares Slug.
type SlugConflict struct {
	Slug    string   `json:"slug"`
	Sources []string `json:"sources"`
}

// SlugConflictError reports every duplicated slug of a build.
type SlugConflictError struct {
	Conflicts []SlugConflict
}

func (e *SlugConflictError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d slug conflict(s)", len(e.Conflicts))
	for _, c := range e.Conflicts {
		fmt.Fprintf(&b, "\n  %s: %s", c.Slug, strings.Join(c.Sources, ", "))
	}
	return b.String()
}

func (e *SlugConflictError) Is(target error) bool { return target == ErrSlugConflict }
