package fs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assonuovavita/sitegen/pkg/core"
)

func TestMarkdownSerializer(t *testing.T) {
	s := NewMarkdownSerializer()

	t.Run("Parse Splits Frontmatter And Body", func(t *testing.T) {
		doc, err := s.Parse(strings.NewReader("---\ntitle: Contatti\nshowInNav: true\nnavOrder: 5\n---\nScrivici.\n"))
		require.NoError(t, err)
		assert.Equal(t, "Contatti", doc.Metadata["title"])
		assert.Equal(t, true, doc.Metadata["showInNav"])
		assert.Equal(t, 5, doc.Metadata["navOrder"])
		assert.Equal(t, "Scrivici.\n", doc.Body)
		assert.Empty(t, doc.SourcePath)
	})

	t.Run("Parse Without Frontmatter", func(t *testing.T) {
		doc, err := s.Parse(strings.NewReader("Solo corpo.\n"))
		require.NoError(t, err)
		assert.NotNil(t, doc.Metadata)
		assert.Empty(t, doc.Metadata)
		assert.Equal(t, "Solo corpo.\n", doc.Body)
	})

	t.Run("Parse Rejects Non Mapping Frontmatter", func(t *testing.T) {
		_, err := s.Parse(strings.NewReader("---\n- a\n- b\n---\n"))
		assert.Error(t, err)
	})

	t.Run("Serialize Orders Schema Keys First", func(t *testing.T) {
		data, err := s.Serialize(core.Document{
			Body: "Corpo\n",
			Metadata: core.Metadata{
				"zeta":        "extra",
				"slug":        "/news",
				"title":       "News",
				"alpha":       1,
				"description": "Notizie",
			},
		})
		require.NoError(t, err)

		want := "---\ntitle: News\ndescription: Notizie\nslug: /news\nalpha: 1\nzeta: extra\n---\nCorpo\n"
		assert.Equal(t, want, string(data))
	})

	t.Run("Serialize Without Metadata", func(t *testing.T) {
		data, err := s.Serialize(core.Document{Body: "x"})
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})
}

// A scaffolded page must survive a write and re-read with identical validated metadata.
func TestSerializerValidationRoundTrip(t *testing.T) {
	order := 3
	meta := core.PageMetadata{
		Title:       "Dona Ora",
		Description: "Sostieni le attività dell'associazione con una donazione, anche piccola, per i nostri progetti.",
		Slug:        "/dona-ora",
		Date:        core.NewDate(2025, 1, 15),
		Template:    core.TemplateLandingPage,
		ShowInNav:   true,
		NavOrder:    &order,
	}

	s := NewMarkdownSerializer()
	data, err := s.Serialize(core.Document{Body: "# Dona\n", Metadata: meta.Frontmatter()})
	require.NoError(t, err)

	doc, err := s.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	doc.SourcePath = "content/pages/dona-ora.mdx"

	got, violations := core.Validate(*doc)
	require.Empty(t, violations)
	assert.Equal(t, meta, got)
	assert.Equal(t, "# Dona\n", doc.Body)
}
