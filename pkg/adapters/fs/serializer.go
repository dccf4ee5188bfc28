package fs

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/assonuovavita/sitegen/pkg/core"
)

// Serializer defines how to read and write a specific content format.
type Serializer interface {
	// Parse reads from r and returns a Document without SourcePath.
	Parse(r io.Reader) (*core.Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc core.Document) ([]byte, error)
}

// DefaultSerializers returns the serializers for the default content extensions.
func DefaultSerializers() map[string]Serializer {
	md := NewMarkdownSerializer()
	return map[string]Serializer{
		".md":  md,
		".mdx": md,
	}
}

// --- Markdown Serializer ---

// MarkdownSerializer handles markup documents with a `---` YAML frontmatter block.
type MarkdownSerializer struct {
	formats []*frontmatter.Format
}

// NewMarkdownSerializer creates a new Markdown serializer.
func NewMarkdownSerializer() *MarkdownSerializer {
	return &MarkdownSerializer{
		formats: []*frontmatter.Format{
			frontmatter.NewFormat("---", "---", yaml.Unmarshal),
		},
	}
}

// Parse splits r into frontmatter and body. A document without frontmatter
// yields empty metadata; a block that is not a key/value mapping is an error.
func (s *MarkdownSerializer) Parse(r io.Reader) (*core.Document, error) {
	meta := core.Metadata{}
	body, err := frontmatter.Parse(r, &meta, s.formats...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	if meta == nil {
		meta = core.Metadata{}
	}

	return &core.Document{
		Body:     string(body),
		Metadata: meta,
	}, nil
}

// Serialize writes the schema keys first, in schema order, then any other keys sorted.
func (s *MarkdownSerializer) Serialize(doc core.Document) ([]byte, error) {
	var buf bytes.Buffer
	if len(doc.Metadata) > 0 {
		node, err := metadataNode(doc.Metadata)
		if err != nil {
			return nil, err
		}

		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(node); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}
	buf.WriteString(doc.Body)
	return buf.Bytes(), nil
}

func metadataNode(meta core.Metadata) (*yaml.Node, error) {
	keys := make([]string, 0, len(meta))
	known := make(map[string]bool, len(core.Fields))
	for _, f := range core.Fields {
		known[f] = true
		if _, ok := meta[f]; ok {
			keys = append(keys, f)
		}
	}
	var extra []string
	for k := range meta {
		if !known[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		var value yaml.Node
		if err := value.Encode(meta[k]); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&value,
		)
	}
	return node, nil
}
