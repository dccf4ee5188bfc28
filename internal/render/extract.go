package render

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	openTagPattern  = regexp.MustCompile(`<([A-Z][A-Za-z0-9]*)((?:\s+[A-Za-z_][\w-]*(?:\s*=\s*(?:"[^"]*"|'[^']*'|\{[^}]*\}))?)*)\s*(/?)>`)
	closeTagPattern = regexp.MustCompile(`</([A-Z][A-Za-z0-9]*)\s*>`)
	attrPattern     = regexp.MustCompile(`([A-Za-z_][\w-]*)(?:\s*=\s*(?:"([^"]*)"|'([^']*)'|\{([^}]*)\}))?`)
	importPattern   = regexp.MustCompile(`(?m)^import\s.+\sfrom\s+['"][^'"]+['"];?[ \t]*\n?`)
	fencePattern    = regexp.MustCompile("(?ms)^(?:```.*?^```|~~~.*?^~~~)[^\n]*$")
	spanPattern     = regexp.MustCompile("``[^\n]+?``|`[^`\n]+`")
)

// extracted is one component occurrence lifted out of a body.
type extracted struct {
	Name  string
	Props Props
	Inner string
}

func placeholder(i int) string {
	return fmt.Sprintf("<!-- component:%d -->", i)
}

func codePlaceholder(i int) string {
	return fmt.Sprintf("<!-- code:%d -->", i)
}

// protectCode swaps fenced blocks, then inline code spans, for placeholders
// so their contents are never read as components.
func protectCode(body string) (string, []string) {
	var blocks []string
	swap := func(code string) string {
		blocks = append(blocks, code)
		return codePlaceholder(len(blocks) - 1)
	}
	out := fencePattern.ReplaceAllStringFunc(body, swap)
	out = spanPattern.ReplaceAllStringFunc(out, swap)
	return out, blocks
}

func restoreCode(s string, blocks []string) string {
	for i, block := range blocks {
		s = strings.Replace(s, codePlaceholder(i), block, 1)
	}
	return s
}

// extractComponents replaces every capitalized tag with a placeholder and
// returns the components in closing order, so children precede parents.
func extractComponents(content string) (string, []extracted, error) {
	type stackEntry struct {
		name  string
		start int
		props Props
	}

	var (
		result     strings.Builder
		components []extracted
		stack      []stackEntry
		position   int
	)

	for position < len(content) {
		openLoc := openTagPattern.FindStringSubmatchIndex(content[position:])
		closeLoc := closeTagPattern.FindStringSubmatchIndex(content[position:])

		if openLoc == nil && closeLoc == nil {
			result.WriteString(content[position:])
			break
		}

		if openLoc != nil && (closeLoc == nil || openLoc[0] < closeLoc[0]) {
			start := position + openLoc[0]
			end := position + openLoc[1]
			result.WriteString(content[position:start])

			name := content[position+openLoc[2] : position+openLoc[3]]
			props := parseProps(content[position+openLoc[4] : position+openLoc[5]])
			selfClosing := openLoc[7] > openLoc[6]

			if selfClosing {
				result.WriteString(placeholder(len(components)))
				components = append(components, extracted{Name: name, Props: props})
			} else {
				stack = append(stack, stackEntry{name: name, start: result.Len(), props: props})
			}
			position = end
			continue
		}

		start := position + closeLoc[0]
		end := position + closeLoc[1]
		result.WriteString(content[position:start])

		name := content[position+closeLoc[2] : position+closeLoc[3]]
		if len(stack) == 0 {
			return "", nil, fmt.Errorf("unexpected closing tag </%s>", name)
		}
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if entry.name != name {
			return "", nil, fmt.Errorf("mismatched closing tag </%s>, expected </%s>", name, entry.name)
		}

		current := result.String()
		inner := current[entry.start:]
		result.Reset()
		result.WriteString(current[:entry.start])
		result.WriteString(placeholder(len(components)))
		components = append(components, extracted{Name: name, Props: entry.props, Inner: inner})

		position = end
	}

	if len(stack) > 0 {
		return "", nil, fmt.Errorf("unterminated tag <%s>", stack[len(stack)-1].name)
	}
	return result.String(), components, nil
}

// parseProps reads JSX-style attributes. A bare attribute is "true" and an
// expression value has surrounding quotes removed.
func parseProps(raw string) Props {
	props := Props{}
	for _, m := range attrPattern.FindAllStringSubmatch(raw, -1) {
		key := m[1]
		switch {
		case strings.Contains(m[0], "="):
			value := m[2] + m[3]
			if expr := strings.TrimSpace(m[4]); expr != "" {
				value = strings.Trim(expr, "\"'`")
			}
			props[key] = value
		default:
			props[key] = "true"
		}
	}
	return props
}

// stripImports drops MDX import lines; components are always in scope.
func stripImports(body string) string {
	return importPattern.ReplaceAllString(body, "")
}

// dedent removes the indentation shared by every non-blank line, so nested
// children are not read as indented code.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent <= 0 {
		return s
	}
	for i, line := range lines {
		if len(line) >= indent {
			lines[i] = line[indent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
