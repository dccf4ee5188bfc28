package main

import (
	"path/filepath"
	"testing"
)

func TestPagePath(t *testing.T) {
	tests := []struct {
		slug, ext, want string
	}{
		{"/", ".mdx", "index.mdx"},
		{"/chi-siamo", ".mdx", "chi-siamo.mdx"},
		{"/progetti/orto/", "md", filepath.Join("progetti", "orto.md")},
	}
	for _, tt := range tests {
		got := pagePath("content", tt.slug, tt.ext)
		if want := filepath.Join("content", tt.want); got != want {
			t.Errorf("pagePath(%q, %q) = %q, want %q", tt.slug, tt.ext, got, want)
		}
	}
}
