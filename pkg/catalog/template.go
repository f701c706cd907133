package catalog

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/goliatone/go-ux4g/pkg/markup"
)

// SegmentKind identifies a piece of a template expression.
type SegmentKind int

const (
	// Literal is verbatim text.
	Literal SegmentKind = iota
	// TextSlot is a named text placeholder, {{name|default}}.
	TextSlot
	// VariantSlot resolves to the selected variant class, {{variant}} or
	// {{variant|name}} where name is the template's preferred variant.
	VariantSlot
	// IDRef is a per-call identifier, {{id:key}}.
	IDRef
	// ChildrenSlot marks where nested intents are inserted, {{children}}.
	ChildrenSlot
)

// Segment is one piece of an Expr.
type Segment struct {
	Kind    SegmentKind
	Literal string
	Name    string
	Default string
}

// Expr is a sequence of literal and slot segments.
type Expr []Segment

// IsLiteral reports whether e contains no slots.
func (e Expr) IsLiteral() bool {
	for _, seg := range e {
		if seg.Kind != Literal {
			return false
		}
	}
	return true
}

// OnlySlots reports whether e carries slots and nothing but whitespace
// between them.
func (e Expr) OnlySlots() bool {
	hasSlot := false
	for _, seg := range e {
		if seg.Kind == Literal {
			if strings.TrimSpace(seg.Literal) != "" {
				return false
			}
			continue
		}
		hasSlot = true
	}
	return hasSlot
}

// Expand concatenates e, asking resolve for the value of every slot.
func (e Expr) Expand(resolve func(Segment) string) string {
	var b strings.Builder
	for _, seg := range e {
		if seg.Kind == Literal {
			b.WriteString(seg.Literal)
			continue
		}
		b.WriteString(resolve(seg))
	}
	return b.String()
}

// TemplateKind distinguishes template nodes.
type TemplateKind int

const (
	TemplateElement TemplateKind = iota
	TemplateText
	TemplateChildren
)

// TemplateAttr is an attribute whose value may contain slots.
type TemplateAttr struct {
	Name  string
	Value Expr
}

// TemplateNode is a node of the template AST.
type TemplateNode struct {
	Kind     TemplateKind
	Tag      string
	Attrs    []TemplateAttr
	Children []*TemplateNode
	Text     Expr
}

// Attr returns the attribute expression for name.
func (n *TemplateNode) Attr(name string) (Expr, bool) {
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// LiteralClasses returns the literal classes of the element's class attribute.
func (n *TemplateNode) LiteralClasses() []string {
	expr, ok := n.Attr("class")
	if !ok {
		return nil
	}
	var out []string
	for _, seg := range expr {
		if seg.Kind == Literal {
			out = append(out, strings.Fields(seg.Literal)...)
		}
	}
	return out
}

// Template is the compiled, read-only AST of one component in one syntax.
type Template struct {
	Syntax markup.Syntax
	Source string
	Roots  []*TemplateNode
}

// Walk visits every node depth first.
func (t *Template) Walk(fn func(*TemplateNode)) {
	var visit func([]*TemplateNode)
	visit = func(nodes []*TemplateNode) {
		for _, node := range nodes {
			fn(node)
			visit(node.Children)
		}
	}
	visit(t.Roots)
}

// Segments returns every slot segment of kind in document order.
func (t *Template) Segments(kind SegmentKind) []Segment {
	var out []Segment
	collect := func(expr Expr) {
		for _, seg := range expr {
			if seg.Kind == kind {
				out = append(out, seg)
			}
		}
	}
	t.Walk(func(node *TemplateNode) {
		if node.Kind == TemplateChildren && kind == ChildrenSlot {
			out = append(out, Segment{Kind: ChildrenSlot, Name: "children"})
			return
		}
		for _, attr := range node.Attrs {
			collect(attr.Value)
		}
		collect(node.Text)
	})
	return out
}

// TextSlots lists the distinct text slot names in document order.
func (t *Template) TextSlots() []string {
	var names []string
	for _, seg := range t.Segments(TextSlot) {
		if !slices.Contains(names, seg.Name) {
			names = append(names, seg.Name)
		}
	}
	return names
}

// SlotDefault returns the default text of the first slot called name.
func (t *Template) SlotDefault(name string) (string, bool) {
	for _, seg := range t.Segments(TextSlot) {
		if seg.Name == name {
			return seg.Default, true
		}
	}
	return "", false
}

// HasChildren reports whether the template declares a {{children}} point.
func (t *Template) HasChildren() bool {
	return len(t.Segments(ChildrenSlot)) > 0
}

// Classes returns the literal classes used anywhere in the template.
func (t *Template) Classes() []string {
	var out []string
	t.Walk(func(node *TemplateNode) {
		for _, class := range node.LiteralClasses() {
			if !slices.Contains(out, class) {
				out = append(out, class)
			}
		}
	})
	return out
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]*?)\s*\}\}`)

// CompileTemplate parses source in syntax and converts it into a template AST.
func CompileTemplate(source string, syntax markup.Syntax) (*Template, error) {
	nodes, err := markup.Parse(source, syntax)
	if err != nil {
		return nil, fmt.Errorf("catalog: template: %w", err)
	}
	tmpl := &Template{Syntax: syntax, Source: source}
	for _, node := range nodes {
		compiled, err := compileNode(node)
		if err != nil {
			return nil, err
		}
		tmpl.Roots = append(tmpl.Roots, compiled)
	}
	return tmpl, nil
}

func compileNode(node *markup.Node) (*TemplateNode, error) {
	if node.Type == markup.TextNode {
		expr, err := compileExpr(node.Text)
		if err != nil {
			return nil, err
		}
		if len(expr) == 1 && expr[0].Kind == ChildrenSlot {
			return &TemplateNode{Kind: TemplateChildren}, nil
		}
		if slices.ContainsFunc(expr, isChildren) {
			return nil, fmt.Errorf("catalog: template: {{children}} must stand alone in %q", node.Text)
		}
		return &TemplateNode{Kind: TemplateText, Text: expr}, nil
	}

	out := &TemplateNode{Kind: TemplateElement, Tag: node.Tag}
	for _, attr := range node.Attrs {
		expr, err := compileExpr(attr.Value)
		if err != nil {
			return nil, err
		}
		if slices.ContainsFunc(expr, isChildren) {
			return nil, fmt.Errorf("catalog: template: {{children}} is not allowed in attribute %s", attr.Name)
		}
		if attr.Name == "class" {
			for _, seg := range expr {
				if seg.Kind != Literal && seg.Kind != VariantSlot {
					return nil, fmt.Errorf("catalog: template: class attribute on <%s> may only hold literal classes and variant slots", node.Tag)
				}
			}
		}
		out.Attrs = append(out.Attrs, TemplateAttr{Name: attr.Name, Value: expr})
	}
	for _, child := range node.Children {
		compiled, err := compileNode(child)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, compiled)
	}
	return out, nil
}

func compileExpr(value string) (Expr, error) {
	var expr Expr
	last := 0
	for _, loc := range placeholderPattern.FindAllStringSubmatchIndex(value, -1) {
		if loc[0] > last {
			expr = append(expr, Segment{Kind: Literal, Literal: value[last:loc[0]]})
		}
		seg, err := parsePlaceholder(value[loc[2]:loc[3]])
		if err != nil {
			return nil, err
		}
		expr = append(expr, seg)
		last = loc[1]
	}
	if last < len(value) {
		expr = append(expr, Segment{Kind: Literal, Literal: value[last:]})
	}
	return expr, nil
}

func parsePlaceholder(body string) (Segment, error) {
	name, def, hasDefault := strings.Cut(body, "|")
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return Segment{}, fmt.Errorf("catalog: template: empty placeholder {{%s}}", body)
	case name == "children":
		if hasDefault {
			return Segment{}, fmt.Errorf("catalog: template: {{children}} takes no default")
		}
		return Segment{Kind: ChildrenSlot, Name: name}, nil
	case name == "variant":
		return Segment{Kind: VariantSlot, Name: name, Default: strings.TrimSpace(def)}, nil
	case strings.HasPrefix(name, "id:"):
		key := strings.TrimSpace(strings.TrimPrefix(name, "id:"))
		if key == "" || hasDefault {
			return Segment{}, fmt.Errorf("catalog: template: malformed identifier placeholder {{%s}}", body)
		}
		return Segment{Kind: IDRef, Name: key}, nil
	default:
		return Segment{Kind: TextSlot, Name: name, Default: def}, nil
	}
}

func isChildren(seg Segment) bool {
	return seg.Kind == ChildrenSlot
}
