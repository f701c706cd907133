package refine

import (
	"slices"
	"sort"
	"strings"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Context is what a matcher sees: the parsed request, the tree it may edit
// and the components recognised in it. Targets are ordered with the
// components named by the request first, then by document order.
type Context struct {
	Request  Request
	Roots    []*markup.Node
	Targets  []Target
	Registry *catalog.Registry

	clean func(string) string
}

// Target is one recognised component occurrence.
type Target struct {
	Def       *catalog.ComponentDefinition
	Node      *markup.Node
	Ancestors []*markup.Node
	Path      string
	Named     bool
}

func newContext(registry *catalog.Registry, roots []*markup.Node, req Request, clean func(string) string) *Context {
	if clean == nil {
		clean = strings.TrimSpace
	}
	return &Context{
		Request:  req,
		Roots:    roots,
		Targets:  collectTargets(registry, roots, req),
		Registry: registry,
		clean:    clean,
	}
}

func collectTargets(registry *catalog.Registry, roots []*markup.Node, req Request) []Target {
	var targets []Target
	markup.Walk(roots, func(v markup.Visit) {
		for _, def := range registry.Identify(v.Node) {
			targets = append(targets, Target{
				Def:       def,
				Node:      v.Node,
				Ancestors: slices.Clone(v.Ancestors),
				Path:      v.Path,
				Named:     namesComponent(req, def),
			})
		}
	})
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Named && !targets[j].Named
	})
	return targets
}

func namesComponent(req Request, def *catalog.ComponentDefinition) bool {
	if req.HasPhrase(def.ID) || req.HasPhrase(strings.ReplaceAll(def.ID, "-", " ")) {
		return true
	}
	return slices.ContainsFunc(def.Keywords, req.HasPhrase) || slices.ContainsFunc(def.Tags, req.HasPhrase)
}

// ComponentIDs lists the distinct component ids present, in target order.
func (c *Context) ComponentIDs() []string {
	var out []string
	for _, target := range c.Targets {
		if !slices.Contains(out, target.Def.ID) {
			out = append(out, target.Def.ID)
		}
	}
	return out
}

// scopes returns the places to search for a target's parts: the component
// itself, each ancestor from the nearest outwards, then the whole snippet.
func (c *Context) scopes(t Target) [][]*markup.Node {
	out := [][]*markup.Node{{t.Node}}
	for idx := len(t.Ancestors) - 1; idx >= 0; idx-- {
		out = append(out, []*markup.Node{t.Ancestors[idx]})
	}
	return append(out, c.Roots)
}

// locate finds the element built from template node tn. Literal attributes
// must match on the first pass; the second pass compares tag and literal
// classes only.
func (c *Context) locate(t Target, tn *catalog.TemplateNode) *markup.Node {
	for _, strict := range []bool{true, false} {
		for _, scope := range c.scopes(t) {
			if node := findLike(scope, tn, strict); node != nil {
				return node
			}
		}
	}
	return nil
}

func findLike(scope []*markup.Node, tn *catalog.TemplateNode, strict bool) *markup.Node {
	classes := tn.LiteralClasses()
	for _, node := range markup.Find(scope, markup.ByTag(tn.Tag)) {
		if !hasAllClasses(node, classes) {
			continue
		}
		if strict && !literalAttrsMatch(node, tn) {
			continue
		}
		return node
	}
	return nil
}

func hasAllClasses(node *markup.Node, classes []string) bool {
	for _, class := range classes {
		if !node.HasClass(class) {
			return false
		}
	}
	return true
}

func literalAttrsMatch(node *markup.Node, tn *catalog.TemplateNode) bool {
	for _, attr := range tn.Attrs {
		if attr.Name == "class" || !attr.Value.IsLiteral() {
			continue
		}
		want := attr.Value.Expand(func(catalog.Segment) string { return "" })
		if got, ok := node.Attr(attr.Name); !ok || got != want {
			return false
		}
	}
	return true
}

// slotNode returns the template element holding slot and, when the slot
// sits in an attribute, the attribute name.
func slotNode(def *catalog.ComponentDefinition, slot string) (*catalog.TemplateNode, string) {
	tmpl := def.Template(markup.HTML)
	if tmpl == nil {
		return nil, ""
	}
	var visit func(nodes []*catalog.TemplateNode) (*catalog.TemplateNode, string)
	visit = func(nodes []*catalog.TemplateNode) (*catalog.TemplateNode, string) {
		for _, node := range nodes {
			if node.Kind != catalog.TemplateElement {
				continue
			}
			for _, attr := range node.Attrs {
				if hasTextSlot(attr.Value, slot) {
					return node, attr.Name
				}
			}
			for _, child := range node.Children {
				if child.Kind == catalog.TemplateText && hasTextSlot(child.Text, slot) {
					return node, ""
				}
			}
			if found, attr := visit(node.Children); found != nil {
				return found, attr
			}
		}
		return nil, ""
	}
	return visit(tmpl.Roots)
}

func hasTextSlot(expr catalog.Expr, slot string) bool {
	return slices.ContainsFunc(expr, func(seg catalog.Segment) bool {
		return seg.Kind == catalog.TextSlot && seg.Name == slot
	})
}

// variantNode returns the template element whose class carries the variant.
func variantNode(def *catalog.ComponentDefinition) *catalog.TemplateNode {
	tmpl := def.Template(markup.HTML)
	if tmpl == nil {
		return nil
	}
	var found *catalog.TemplateNode
	tmpl.Walk(func(node *catalog.TemplateNode) {
		if found != nil || node.Kind != catalog.TemplateElement {
			return
		}
		if expr, ok := node.Attr("class"); ok && slices.ContainsFunc(expr, func(seg catalog.Segment) bool {
			return seg.Kind == catalog.VariantSlot
		}) {
			found = node
		}
	})
	return found
}

// variantHolder is the element carrying the component's variant class.
func (c *Context) variantHolder(t Target) *markup.Node {
	classes := c.Registry.VariantClasses(t.Def.ID)
	if found := markup.Find([]*markup.Node{t.Node}, func(n *markup.Node) bool {
		return slices.ContainsFunc(classes, n.HasClass)
	}); len(found) > 0 {
		return found[0]
	}
	if tn := variantNode(t.Def); tn != nil {
		if node := findLike([]*markup.Node{t.Node}, tn, false); node != nil {
			return node
		}
	}
	return t.Node
}

// currentVariant reads the variant off holder, falling back to the variant
// without a class and then to the declared default.
func currentVariant(def *catalog.ComponentDefinition, holder *markup.Node) catalog.Variant {
	for _, class := range holder.Classes() {
		if variant, ok := def.VariantForClass(class); ok {
			return variant
		}
	}
	for _, variant := range def.Variants {
		if variant.Class == "" {
			return variant
		}
	}
	variant, _ := def.Variant(def.DefaultVariant)
	return variant
}

// modifierElement is the element a modifier class belongs on.
func (c *Context) modifierElement(t Target, modifier catalog.Modifier) *markup.Node {
	if modifier.Target != "" {
		if found := markup.Find([]*markup.Node{t.Node}, markup.ByClass(modifier.Target)); len(found) > 0 {
			return found[0]
		}
	}
	return c.variantHolder(t)
}

// groupClass returns the class of another modifier from modifier's group
// already present on node.
func groupClass(def *catalog.ComponentDefinition, modifier catalog.Modifier, node *markup.Node) string {
	if modifier.Group == "" {
		return ""
	}
	for _, other := range def.Modifiers {
		if other.Group == modifier.Group && other.Name != modifier.Name && node.HasClass(other.Class) {
			return other.Class
		}
	}
	return ""
}

// replaceClass swaps old for replacement in place so the class order
// survives a swap and its inverse. A missing old class appends replacement;
// an empty replacement removes old.
func replaceClass(node *markup.Node, old, replacement string) {
	if old == replacement {
		return
	}
	classes := node.Classes()
	idx := slices.Index(classes, old)
	if old == "" || idx < 0 {
		if replacement != "" {
			node.AddClass(replacement)
		}
		return
	}
	if replacement == "" || slices.Contains(classes, replacement) {
		classes = slices.Delete(classes, idx, idx+1)
	} else {
		classes[idx] = replacement
	}
	node.SetClasses(classes)
}

// firstElement returns the first element among roots.
func firstElement(roots []*markup.Node) *markup.Node {
	for _, root := range roots {
		if root.IsElement() {
			return root
		}
	}
	return nil
}
