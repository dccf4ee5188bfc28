package render

import (
	"html/template"
	"testing"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := DefaultRegistry(monday.LocaleItIT)
	assert.Equal(t, []string{"Button", "Card", "DocumentLink", "Hero"}, r.Names())

	err := r.Register("Button", Button)
	assert.ErrorIs(t, err, ErrDuplicateComponent)

	require.NoError(t, r.Register("Quote", func(p Props, c template.HTML) (template.HTML, error) {
		return "<blockquote>" + c + "</blockquote>", nil
	}))
	_, ok := r.Get("Quote")
	assert.True(t, ok)
}

func TestParseProps(t *testing.T) {
	props := parseProps(` title="Statuto" href='/doc.pdf' external count={3} label={"Ciao"} `)
	assert.Equal(t, Props{
		"title":    "Statuto",
		"href":     "/doc.pdf",
		"external": "true",
		"count":    "3",
		"label":    "Ciao",
	}, props)
}

func TestExtractComponents(t *testing.T) {
	out, comps, err := extractComponents(`a <Hero title="x"><Button href="/b">b</Button></Hero> c <DocumentLink title="d" href="/d.pdf"/>`)
	require.NoError(t, err)

	assert.Equal(t, "a <!-- component:1 --> c <!-- component:2 -->", out)
	require.Len(t, comps, 3)
	assert.Equal(t, "Button", comps[0].Name)
	assert.Equal(t, "b", comps[0].Inner)
	assert.Equal(t, "Hero", comps[1].Name)
	assert.Equal(t, "<!-- component:0 -->", comps[1].Inner)
	assert.Equal(t, "DocumentLink", comps[2].Name)
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "PDF", fileExtension("/documents/statuto-2025.pdf"))
	assert.Equal(t, "DOCX", fileExtension("/a/b.docx?v=2"))
	assert.Equal(t, "FILE", fileExtension("/download"))
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "\na\n  b\n", dedent("\n  a\n    b\n"))
}
