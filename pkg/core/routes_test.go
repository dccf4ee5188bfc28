package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assonuovavita/sitegen/pkg/core"
)

func page(source, slug, title string, order *int, inNav bool) core.Page {
	return core.Page{
		Document: core.Document{SourcePath: source, Body: "body of " + source},
		Meta: core.PageMetadata{
			Title:     title,
			Slug:      slug,
			Template:  core.TemplatePage,
			ShowInNav: inNav,
			NavOrder:  order,
		},
	}
}

func intPtr(n int) *int { return &n }

func TestDeriveNavigation_Ordering(t *testing.T) {
	pages := []core.Page{
		page("a.md", "/a", "A", intPtr(3), true),
		page("b.md", "/b", "B", intPtr(1), true),
		page("c.md", "/c", "C", nil, true),
		page("d.md", "/d", "D", intPtr(1), true),
		page("e.md", "/e", "E", intPtr(0), false),
	}

	nav := core.DeriveNavigation(pages)

	labels := make([]string, len(nav))
	for i, item := range nav {
		labels[i] = item.Label
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, labels)
	assert.Equal(t, "/b", nav[0].Href)
	assert.Nil(t, nav[3].Order)
}

func TestDeriveNavigation_DoesNotAliasMetadata(t *testing.T) {
	pages := []core.Page{page("a.md", "/a", "A", intPtr(1), true)}
	nav := core.DeriveNavigation(pages)

	*nav[0].Order = 99
	assert.Equal(t, 1, *pages[0].Meta.NavOrder)
}

func TestDeriveRoutes(t *testing.T) {
	pages := []core.Page{
		page("index.mdx", "/", "Home", intPtr(0), true),
		page("chi-siamo.mdx", "/chi-siamo", "Chi Siamo", intPtr(1), true),
	}

	table, err := core.DeriveRoutes(pages)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"/", "/chi-siamo"}, table.Slugs())

	r, ok := table.Get("/chi-siamo")
	require.True(t, ok)
	assert.Equal(t, "chi-siamo.mdx", r.Source)
	assert.Equal(t, core.TemplatePage, r.Template)
	assert.Equal(t, "body of chi-siamo.mdx", r.Body)

	_, ok = table.Get("/missing")
	assert.False(t, ok)
}

func TestDeriveRoutes_SlugConflict(t *testing.T) {
	pages := []core.Page{
		page("pages/chi-siamo.mdx", "/chi-siamo", "Chi Siamo", nil, true),
		page("pages/about.mdx", "/about", "About", nil, true),
		page("legacy/chi-siamo.md", "/chi-siamo", "Chi Siamo (old)", nil, true),
	}

	table, err := core.DeriveRoutes(pages)
	assert.Nil(t, table)
	require.ErrorIs(t, err, core.ErrSlugConflict)

	var conflictErr *core.SlugConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, "/chi-siamo", conflictErr.Conflicts[0].Slug)
	assert.Equal(t, []string{"legacy/chi-siamo.md", "pages/chi-siamo.mdx"}, conflictErr.Conflicts[0].Sources)
	assert.Contains(t, err.Error(), "legacy/chi-siamo.md")
	assert.Contains(t, err.Error(), "pages/chi-siamo.mdx")
}

func TestDeriveRoutes_SlugsAreUnique(t *testing.T) {
	slugs := []string{"/", "/chi-siamo", "/servizi", "/documenti", "/donate", "/5x1000"}
	pages := make([]core.Page, len(slugs))
	for i, s := range slugs {
		pages[i] = page(s+".md", s, s, nil, true)
	}

	table, err := core.DeriveRoutes(pages)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, r := range table.All() {
		assert.False(t, seen[r.Slug], "duplicate slug %s", r.Slug)
		seen[r.Slug] = true
	}
	assert.Len(t, seen, len(slugs))
}
