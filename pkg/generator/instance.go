package generator

import (
	"slices"
	"strings"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

// instance is one template instantiation. Identifier keys are resolved once
// per instance so every {{id:key}} in the template names the same element.
type instance struct {
	def      *catalog.ComponentDefinition
	variant  string
	slots    map[string]string
	ids      *IDSequence
	local    map[string]string
	children []*markup.Node

	own           []*markup.Node
	variantHolder *markup.Node
}

func (i *instance) build(tn *catalog.TemplateNode) []*markup.Node {
	switch tn.Kind {
	case catalog.TemplateChildren:
		return i.children
	case catalog.TemplateText:
		text := tn.Text.Expand(i.resolve)
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []*markup.Node{markup.Text(text)}
	}

	node := markup.Element(tn.Tag)
	i.own = append(i.own, node)
	for _, attr := range tn.Attrs {
		if attr.Name == "class" {
			if classes := i.classes(node, attr.Value); len(classes) > 0 {
				node.Attrs = append(node.Attrs, markup.Attr{Name: "class", Value: strings.Join(classes, " ")})
			}
			continue
		}
		value := attr.Value.Expand(i.resolve)
		if value == "" && attr.Value.OnlySlots() {
			continue
		}
		node.Attrs = append(node.Attrs, markup.Attr{Name: attr.Name, Value: value})
	}
	for _, child := range tn.Children {
		node.Append(i.build(child)...)
	}
	return []*markup.Node{node}
}

// classes expands a class attribute. The element carrying the variant slot
// is remembered as the default modifier target.
func (i *instance) classes(node *markup.Node, expr catalog.Expr) []string {
	var out []string
	add := func(value string) {
		for _, class := range strings.Fields(value) {
			if !slices.Contains(out, class) {
				out = append(out, class)
			}
		}
	}
	for _, seg := range expr {
		switch seg.Kind {
		case catalog.Literal:
			add(seg.Literal)
		case catalog.VariantSlot:
			if i.variantHolder == nil {
				i.variantHolder = node
			}
			add(i.variantClass(seg))
		}
	}
	return out
}

func (i *instance) resolve(seg catalog.Segment) string {
	switch seg.Kind {
	case catalog.TextSlot:
		if value, ok := i.slots[seg.Name]; ok {
			return value
		}
		return seg.Default
	case catalog.IDRef:
		id, ok := i.local[seg.Name]
		if !ok {
			id = i.ids.Next(seg.Name)
			i.local[seg.Name] = id
		}
		return id
	case catalog.VariantSlot:
		return i.variantClass(seg)
	}
	return ""
}

// variantClass resolves a variant slot. With no variant requested the slot's
// preferred variant wins over the component default.
func (i *instance) variantClass(seg catalog.Segment) string {
	name := i.variant
	if name == "" {
		name = seg.Default
	}
	if name == "" {
		name = i.def.DefaultVariant
	}
	variant, _ := i.def.Variant(name)
	return variant.Class
}

// applyModifiers adds modifier classes to the element carrying the target
// class, else to the variant slot's element, else to the first root element.
func (i *instance) applyModifiers(roots []*markup.Node, modifiers []catalog.Modifier) {
	for _, modifier := range modifiers {
		target := i.modifierTarget(roots, modifier)
		if target != nil {
			target.AddClass(modifier.Class)
		}
	}
}

func (i *instance) modifierTarget(roots []*markup.Node, modifier catalog.Modifier) *markup.Node {
	if modifier.Target != "" {
		for _, node := range i.own {
			if node.HasClass(modifier.Target) {
				return node
			}
		}
	}
	if i.variantHolder != nil {
		return i.variantHolder
	}
	for _, root := range roots {
		if root.IsElement() {
			return root
		}
	}
	return nil
}
