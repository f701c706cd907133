package markup

import (
	"slices"
	"strconv"
	"strings"
)

// NodeType distinguishes elements from text.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Attr is a single attribute stored under its canonical HTML name.
type Attr struct {
	Name  string
	Value string
}

// Node is an element or a text leaf. Attributes keep document order; the
// class list lives in the "class" attribute and is managed through the class
// helpers.
type Node struct {
	Type     NodeType
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Element builds an element node.
func Element(tag string, attrs ...Attr) *Node {
	return &Node{Type: ElementNode, Tag: strings.ToLower(tag), Attrs: attrs}
}

// Text builds a text node.
func Text(value string) *Node {
	return &Node{Type: TextNode, Text: value}
}

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Attr returns the value of the canonical attribute name.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute is present, whatever its value.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// SetAttr replaces the attribute value in place or appends it.
func (n *Node) SetAttr(name, value string) {
	for idx := range n.Attrs {
		if n.Attrs[idx].Name == name {
			n.Attrs[idx].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr deletes the attribute and reports whether it was present.
func (n *Node) RemoveAttr(name string) bool {
	before := len(n.Attrs)
	n.Attrs = slices.DeleteFunc(n.Attrs, func(attr Attr) bool { return attr.Name == name })
	return len(n.Attrs) != before
}

// Classes returns the class list in document order.
func (n *Node) Classes() []string {
	value, _ := n.Attr("class")
	return strings.Fields(value)
}

// HasClass reports whether class is in the class list.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.Classes(), class)
}

// AddClass appends class when missing and reports whether the list changed.
func (n *Node) AddClass(class string) bool {
	class = strings.TrimSpace(class)
	if class == "" || n.HasClass(class) {
		return false
	}
	n.SetClasses(append(n.Classes(), class))
	return true
}

// RemoveClass drops class and reports whether the list changed. The class
// attribute is removed when the list becomes empty.
func (n *Node) RemoveClass(class string) bool {
	classes := n.Classes()
	kept := slices.DeleteFunc(slices.Clone(classes), func(c string) bool { return c == class })
	if len(kept) == len(classes) {
		return false
	}
	n.SetClasses(kept)
	return true
}

// SetClasses replaces the class list, keeping the attribute position.
func (n *Node) SetClasses(classes []string) {
	if len(classes) == 0 {
		n.RemoveAttr("class")
		return
	}
	n.SetAttr("class", strings.Join(classes, " "))
}

// TextContent concatenates the text beneath n.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Type == TextNode {
		return n.Text
	}
	parts := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		if text := child.TextContent(); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// SetText replaces the children of n with a single text node.
func (n *Node) SetText(value string) {
	n.Children = []*Node{Text(value)}
}

// Clone deep-copies n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Type:  n.Type,
		Tag:   n.Tag,
		Attrs: slices.Clone(n.Attrs),
		Text:  n.Text,
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for idx, child := range n.Children {
			out.Children[idx] = child.Clone()
		}
	}
	return out
}

// CloneAll deep-copies a list of roots.
func CloneAll(nodes []*Node) []*Node {
	out := make([]*Node, len(nodes))
	for idx, node := range nodes {
		out[idx] = node.Clone()
	}
	return out
}

// Visit describes an element reached by Walk.
type Visit struct {
	Node      *Node
	Ancestors []*Node
	Path      string
}

// Walk visits every element beneath roots in document order. Path is an
// XPath-like location such as /form[1]/div[2]/input[1], indexed per tag among
// siblings.
func Walk(roots []*Node, fn func(Visit)) {
	walk(roots, nil, "", fn)
}

func walk(nodes []*Node, ancestors []*Node, prefix string, fn func(Visit)) {
	counts := make(map[string]int)
	for _, node := range nodes {
		if !node.IsElement() {
			continue
		}
		counts[node.Tag]++
		path := prefix + "/" + node.Tag + "[" + strconv.Itoa(counts[node.Tag]) + "]"
		fn(Visit{Node: node, Ancestors: ancestors, Path: path})
		if len(node.Children) > 0 {
			walk(node.Children, append(slices.Clone(ancestors), node), path, fn)
		}
	}
}

// Find returns the elements beneath roots that satisfy match, in document
// order.
func Find(roots []*Node, match func(*Node) bool) []*Node {
	var out []*Node
	Walk(roots, func(v Visit) {
		if match(v.Node) {
			out = append(out, v.Node)
		}
	})
	return out
}

// ByClass matches elements carrying class.
func ByClass(class string) func(*Node) bool {
	return func(n *Node) bool { return n.HasClass(class) }
}

// ByTag matches elements with one of the tags.
func ByTag(tags ...string) func(*Node) bool {
	return func(n *Node) bool { return slices.Contains(tags, n.Tag) }
}
