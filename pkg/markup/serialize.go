package markup

import (
	"strings"
)

const indentUnit = "  "

var (
	htmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	jsxTextEscaper  = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "{", "&#123;", "}", "&#125;")
	attrEscaper     = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// Render serializes nodes in the requested syntax. JSX output with more than
// one root is wrapped in a fragment.
func Render(nodes []*Node, syntax Syntax) string {
	var b strings.Builder
	if syntax == JSX && len(nodes) > 1 {
		b.WriteString("<>\n")
		for _, node := range nodes {
			writeNode(&b, node, 1, syntax)
		}
		b.WriteString("</>")
		return b.String()
	}
	for _, node := range nodes {
		writeNode(&b, node, 0, syntax)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Convert parses code in one syntax and writes it in another.
func Convert(code string, from, to Syntax) (string, error) {
	nodes, err := Parse(code, from)
	if err != nil {
		return "", err
	}
	return Render(nodes, to), nil
}

func writeNode(b *strings.Builder, node *Node, depth int, syntax Syntax) {
	indent := strings.Repeat(indentUnit, depth)
	if node.Type == TextNode {
		b.WriteString(indent)
		b.WriteString(renderText(node.Text, syntax))
		b.WriteByte('\n')
		return
	}

	b.WriteString(indent)
	b.WriteByte('<')
	b.WriteString(node.Tag)
	writeAttrs(b, node.Attrs, syntax)

	if IsVoid(node.Tag) {
		if syntax == JSX {
			b.WriteString(" />\n")
		} else {
			b.WriteString(">\n")
		}
		return
	}

	switch {
	case len(node.Children) == 0:
		b.WriteString("></" + node.Tag + ">\n")
	case len(node.Children) == 1 && node.Children[0].Type == TextNode:
		b.WriteByte('>')
		b.WriteString(renderText(node.Children[0].Text, syntax))
		b.WriteString("</" + node.Tag + ">\n")
	default:
		b.WriteString(">\n")
		for _, child := range node.Children {
			writeNode(b, child, depth+1, syntax)
		}
		b.WriteString(indent + "</" + node.Tag + ">\n")
	}
}

func writeAttrs(b *strings.Builder, attrs []Attr, syntax Syntax) {
	for _, attr := range attrs {
		name := AttrName(attr.Name, syntax)
		value := attr.Value

		if IsBooleanAttr(attr.Name) {
			if strings.EqualFold(strings.TrimSpace(value), "false") {
				if syntax == JSX {
					b.WriteString(" " + name + "={false}")
				}
				continue
			}
			b.WriteString(" " + name)
			continue
		}

		if syntax == JSX {
			if attr.Name == "style" {
				if expr := styleToJSX(value); expr != "" {
					b.WriteString(" style=" + expr)
				}
				continue
			}
			if isExpression(value) {
				b.WriteString(" " + name + "=" + value)
				continue
			}
		}
		b.WriteString(" " + name + `="` + escapeAttr(value) + `"`)
	}
}

func renderText(text string, syntax Syntax) string {
	if syntax == JSX && isExpression(text) {
		return text
	}
	return escapeText(text, syntax)
}

func escapeText(text string, syntax Syntax) string {
	if syntax == JSX {
		return jsxTextEscaper.Replace(text)
	}
	return htmlTextEscaper.Replace(text)
}

func escapeAttr(value string) string {
	return attrEscaper.Replace(value)
}

func isExpression(value string) bool {
	return len(value) >= 2 && strings.HasPrefix(value, "{") && strings.HasSuffix(value, "}")
}
