package manifest_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assonuovavita/sitegen/internal/manifest"
	"github.com/assonuovavita/sitegen/pkg/core"
)

func testSite(t *testing.T) *core.Site {
	t.Helper()
	order := 1
	meta := func(slug, title string, nav *int) core.PageMetadata {
		return core.PageMetadata{
			Title:       title,
			Description: "Una descrizione abbastanza lunga da rispettare il limite minimo di caratteri.",
			Slug:        slug,
			Date:        core.NewDate(2025, 10, 10),
			Template:    core.TemplatePage,
			ShowInNav:   nav != nil,
			NavOrder:    nav,
		}
	}
	pages := []core.Page{
		{Document: core.Document{SourcePath: "content/pages/chi-siamo.mdx"}, Meta: meta("/chi-siamo", "Chi Siamo", &order)},
		{Document: core.Document{SourcePath: "content/pages/privacy.mdx"}, Meta: meta("/privacy", "Privacy", nil)},
	}
	table, err := core.DeriveRoutes(pages)
	require.NoError(t, err)
	return &core.Site{
		Info:       core.SiteInfo{Title: "Associazione Nuova Vita", Origin: "https://www.assonuovavita.it", Language: "it"},
		Routes:     table,
		Navigation: core.DeriveNavigation(pages),
	}
}

func TestBuild(t *testing.T) {
	m := manifest.Build(testSite(t))

	assert.Equal(t, manifest.Version, m.Version)
	_, err := uuid.Parse(m.BuildID)
	assert.NoError(t, err)
	assert.False(t, m.GeneratedAt.IsZero())
	require.Len(t, m.Routes, 2)
	assert.Equal(t, "/chi-siamo", m.Routes[0].Slug)
	require.Len(t, m.Navigation, 1)
	assert.Equal(t, "/chi-siamo", m.Navigation[0].Href)
	require.NotNil(t, m.Navigation[0].Order)
	assert.Equal(t, 1, *m.Navigation[0].Order)

	other := manifest.Build(testSite(t))
	assert.NotEqual(t, m.BuildID, other.BuildID)
}

func TestBuildEmptySite(t *testing.T) {
	m := manifest.Build(&core.Site{})
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"routes":[]`)
	assert.Contains(t, string(data), `"navigation":[]`)
}

func TestEncode(t *testing.T) {
	data, err := manifest.Encode(manifest.Build(testSite(t)))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	routes := decoded["routes"].([]any)
	first := routes[0].(map[string]any)
	assert.Equal(t, "content/pages/chi-siamo.mdx", first["source"])
	assert.NotContains(t, first, "Body")

	metadata := first["metadata"].(map[string]any)
	assert.Equal(t, "2025-10-10", metadata["date"])
	assert.Equal(t, float64(1), metadata["navOrder"])
}

func TestValidate(t *testing.T) {
	t.Run("Rejects Malformed JSON", func(t *testing.T) {
		err := manifest.Validate([]byte("{"))
		assert.True(t, errors.Is(err, manifest.ErrInvalidManifest))
	})

	t.Run("Reports Every Issue", func(t *testing.T) {
		data := []byte(`{
  "version": 2,
  "buildId": "not-a-uuid",
  "generatedAt": "2025-10-10T00:00:00Z",
  "site": {"title": "x", "origin": "y", "language": "it"},
  "routes": [],
  "navigation": [{"label": "Home", "href": "Home"}]
}`)
		err := manifest.Validate(data)
		require.Error(t, err)
		assert.True(t, errors.Is(err, manifest.ErrInvalidManifest))

		var verr *manifest.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.GreaterOrEqual(t, len(verr.Issues), 3)
	})
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")
	path, err := manifest.Write(dir, manifest.Build(testSite(t)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, manifest.FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NoError(t, manifest.Validate(data))
}
