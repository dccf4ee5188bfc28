package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults Without File", func(t *testing.T) {
		dir := t.TempDir()
		cfg, used, err := LoadConfig("", dir)
		require.NoError(t, err)

		assert.Empty(t, used)
		assert.Equal(t, DefaultSite, cfg.Site)
		assert.Equal(t, []string{filepath.Join(dir, "content", "pages")}, cfg.Content.Roots)
		assert.Equal(t, []string{".md", ".mdx"}, cfg.Content.Extensions)
		assert.Equal(t, 8, cfg.Content.Concurrency)
		assert.Equal(t, filepath.Join(dir, "public"), cfg.Output.Dir)
		assert.True(t, cfg.Output.HTML)
		assert.True(t, cfg.Output.Manifest)
		assert.Equal(t, 100, cfg.Watch.EventBuffer)
	})

	t.Run("Reads File From Base Dir", func(t *testing.T) {
		dir := t.TempDir()
		yaml := `site:
  title: Nuova Vita
  origin: https://example.org
content:
  roots:
    - content/pages
    - src/pages
  ignore:
    - "drafts/**"
output:
  dir: dist
  manifest: false
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yaml), 0o644))

		cfg, used, err := LoadConfig("", dir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, ConfigFileName), used)
		assert.Equal(t, "Nuova Vita", cfg.Site.Title)
		assert.Equal(t, "https://example.org", cfg.Site.Origin)
		assert.Equal(t, "it", cfg.Site.Language)
		assert.Equal(t, []string{
			filepath.Join(dir, "content", "pages"),
			filepath.Join(dir, "src", "pages"),
		}, cfg.Content.Roots)
		assert.Equal(t, []string{"drafts/**"}, cfg.Content.Ignore)
		assert.Equal(t, filepath.Join(dir, "dist"), cfg.Output.Dir)
		assert.False(t, cfg.Output.Manifest)
		assert.True(t, cfg.Output.HTML)
	})

	t.Run("Explicit Path Must Exist", func(t *testing.T) {
		_, _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
		assert.Error(t, err)
	})

	t.Run("Roots Resolve Against Config Dir", func(t *testing.T) {
		dir := t.TempDir()
		nested := filepath.Join(dir, "conf")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		path := filepath.Join(nested, "site.yaml")
		require.NoError(t, os.WriteFile(path, []byte("content:\n  roots: [pages]\n"), 0o644))

		cfg, used, err := LoadConfig(path, "/elsewhere")
		require.NoError(t, err)
		assert.Equal(t, path, used)
		assert.Equal(t, []string{filepath.Join(nested, "pages")}, cfg.Content.Roots)
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("SITEGEN_SITE_TITLE", "Da Ambiente")
		t.Setenv("SITEGEN_OUTPUT_HTML", "false")

		cfg, _, err := LoadConfig("", t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "Da Ambiente", cfg.Site.Title)
		assert.False(t, cfg.Output.HTML)
	})
}

func TestConfigOptions(t *testing.T) {
	cfg := Config{
		Site:    DefaultSite,
		Content: ContentConfig{Roots: []string{"a", "b"}, Extensions: []string{".md"}, Ignore: []string{"x/**"}, Concurrency: 2},
		Watch:   WatchConfig{EventBuffer: 7},
	}

	o := defaultOptions()
	for _, opt := range cfg.Options() {
		opt(o)
	}
	assert.Equal(t, []string{"a", "b"}, o.roots)
	assert.Equal(t, []string{".md"}, o.extensions)
	assert.Equal(t, []string{"x/**"}, o.ignore)
	assert.Equal(t, 2, o.concurrency)
	assert.Equal(t, 7, o.eventBuffer)
	assert.Equal(t, DefaultSite, o.site)
}
