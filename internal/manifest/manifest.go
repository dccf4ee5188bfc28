// Package manifest produces the machine-readable description of a build.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/assonuovavita/sitegen/pkg/adapters/fs"
	"github.com/assonuovavita/sitegen/pkg/core"
)

// Version is the manifest format version.
const Version = 1

// FileName is the manifest file written into the output directory.
const FileName = "routes.json"

// ErrInvalidManifest is returned when a manifest does not match its schema.
var ErrInvalidManifest = errors.New("manifest: invalid")

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Manifest lists every route and the navigation of one build.
type Manifest struct {
	Version     int                   `json:"version"`
	BuildID     string                `json:"buildId"`
	GeneratedAt time.Time             `json:"generatedAt"`
	Site        core.SiteInfo         `json:"site"`
	Routes      []core.Route          `json:"routes"`
	Navigation  []core.NavigationItem `json:"navigation"`
}

// Build describes site. Routes keep the route table order.
func Build(site *core.Site) Manifest {
	m := Manifest{
		Version:     Version,
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Site:        site.Info,
		Routes:      []core.Route{},
		Navigation:  []core.NavigationItem{},
	}
	if site.Routes != nil {
		m.Routes = append(m.Routes, site.Routes.All()...)
	}
	m.Navigation = append(m.Navigation, site.Navigation...)
	return m
}

// Issue is one schema mismatch.
type Issue struct {
	Location string
	Message  string
}

// ValidationError lists every mismatch found in a manifest.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return "manifest: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidManifest }

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if err := compiler.AddResource("routes.schema.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile("routes.schema.json")
	})
	return schema, schemaErr
}

// Validate checks encoded manifest JSON against the embedded schema.
func Validate(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile manifest schema: %w", err)
	}

	var doc interface{}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if err := s.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return &ValidationError{Issues: collectIssues(verr)}
		}
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}

// Encode returns the indented JSON of m after validating it.
func Encode(m Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Write validates m and writes it atomically to dir/routes.json.
func Write(dir string, m Manifest) (string, error) {
	data, err := Encode(m)
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, FileName)
	if err := fs.WriteFileAtomic(target, data, 0o644); err != nil {
		return "", err
	}
	return target, nil
}
