package refine

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

var slotAliases = map[string]string{
	"label":    aliasText,
	"text":     aliasText,
	"caption":  aliasText,
	"wording":  aliasText,
	"copy":     aliasText,
	"heading":  "title",
	"header":   "title",
	"headline": "title",
	"content":  "body",
	"message":  "body",
	"button":   aliasButton,
	"cta":      aliasButton,
}

const (
	aliasText   = "@text"
	aliasButton = "@button"
)

var renameWords = []string{"rename", "relabel", "retitle", "say", "says", "read", "reads", "call"}

// slotFor picks the text slot a request refers to. Slot names win over
// aliases; a bare rename falls back to the component's text slot.
func slotFor(req Request, def *catalog.ComponentDefinition) (string, bool) {
	tmpl := def.Template(markup.HTML)
	if tmpl == nil {
		return "", false
	}
	slots := tmpl.TextSlots()
	for _, word := range req.Words {
		if slices.Contains(slots, word) {
			return word, true
		}
	}
	for _, word := range req.Words {
		alias, ok := slotAliases[word]
		if !ok {
			continue
		}
		switch alias {
		case aliasText:
			if def.TextSlot != "" {
				return def.TextSlot, true
			}
		case aliasButton:
			if def.ButtonSlot != "" {
				return def.ButtonSlot, true
			}
		default:
			if slices.Contains(slots, alias) {
				return alias, true
			}
		}
	}
	if req.Has(renameWords...) && def.TextSlot != "" {
		return def.TextSlot, true
	}
	return "", false
}

func matchReplaceText(ctx *Context) (Edit, bool) {
	req := ctx.Request
	if len(req.Quoted) == 0 {
		return Edit{}, false
	}
	value := ctx.clean(req.Quoted[len(req.Quoted)-1])
	if value == "" {
		return Edit{}, false
	}
	for _, target := range ctx.Targets {
		slot, ok := slotFor(req, target.Def)
		if !ok {
			continue
		}
		tn, attr := slotNode(target.Def, slot)
		if tn == nil {
			continue
		}
		node := ctx.locate(target, tn)
		if node == nil {
			continue
		}
		return Edit{
			Operation: OpReplaceText,
			Component: target.Def.ID,
			Summary:   fmt.Sprintf("set %s %s to %q", target.Def.ID, slot, value),
			Apply: func() {
				if attr != "" {
					node.SetAttr(attr, value)
					return
				}
				node.SetText(value)
			},
		}, true
	}
	return Edit{}, false
}

type toggle struct {
	words []string
	attr  string
	on    bool
}

var toggles = []toggle{
	{words: []string{"disable", "disabled"}, attr: "disabled", on: true},
	{words: []string{"enable", "enabled"}, attr: "disabled", on: false},
	{words: []string{"require", "required", "mandatory"}, attr: "required", on: true},
	{words: []string{"optional"}, attr: "required", on: false},
	{words: []string{"readonly", "read-only"}, attr: "readonly", on: true},
	{words: []string{"editable", "writable"}, attr: "readonly", on: false},
	{words: []string{"check", "checked", "tick", "ticked", "preselect", "preselected"}, attr: "checked", on: true},
	{words: []string{"uncheck", "unchecked", "untick", "unticked"}, attr: "checked", on: false},
	{words: []string{"hide", "hidden"}, attr: "hidden", on: true},
	{words: []string{"show", "unhide", "visible"}, attr: "hidden", on: false},
}

var toggleTags = map[string][]string{
	"disabled": {"button", "input", "select", "textarea", "fieldset"},
	"required": {"input", "select", "textarea"},
	"readonly": {"input", "textarea"},
	"checked":  {"input"},
}

// toggleSite returns the element within node that carries attr.
func toggleSite(node *markup.Node, attr string) *markup.Node {
	tags, ok := toggleTags[attr]
	if !ok {
		return node
	}
	if found := markup.Find([]*markup.Node{node}, markup.ByTag(tags...)); len(found) > 0 {
		return found[0]
	}
	return nil
}

func matchToggleAttribute(ctx *Context) (Edit, bool) {
	req := ctx.Request
	for idx, word := range req.Words {
		tg, ok := lookupToggle(word)
		if !ok {
			continue
		}
		on := tg.on
		if req.negated(idx) {
			on = !on
		}
		component, node := "", (*markup.Node)(nil)
		for _, target := range ctx.Targets {
			if node = toggleSite(target.Node, tg.attr); node != nil {
				component = target.Def.ID
				break
			}
		}
		if node == nil {
			if root := firstElement(ctx.Roots); root != nil {
				node = toggleSite(root, tg.attr)
			}
		}
		if node == nil {
			continue
		}
		verb := "set"
		if !on {
			verb = "cleared"
		}
		return Edit{
			Operation: OpToggleAttribute,
			Component: component,
			Summary:   fmt.Sprintf("%s %s on <%s>", verb, tg.attr, node.Tag),
			Apply: func() {
				if on {
					node.SetAttr(tg.attr, "")
					return
				}
				node.RemoveAttr(tg.attr)
			},
		}, true
	}
	return Edit{}, false
}

func lookupToggle(word string) (toggle, bool) {
	for _, tg := range toggles {
		if slices.Contains(tg.words, word) {
			return tg, true
		}
	}
	return toggle{}, false
}

func matchClass(ctx *Context) (Edit, bool) {
	vocabulary := ctx.Registry.Vocabulary(ctx.ComponentIDs()...)
	if len(ctx.Targets) == 0 {
		vocabulary = nil
	}
	removing := ctx.Request.removing()
	for _, word := range ctx.Request.Words {
		if !ctx.isClass(word, vocabulary) {
			continue
		}
		if removing {
			if edit, ok := ctx.removeClass(word); ok {
				return edit, true
			}
			continue
		}
		if edit, ok := ctx.addClass(word); ok {
			return edit, true
		}
	}
	return Edit{}, false
}

// isClass reports whether word names a class the request may add or remove.
// Hyphenless utility names that double as variant or modifier words of a
// present component are left to those matchers.
func (c *Context) isClass(word string, vocabulary []string) bool {
	if _, ok := c.Registry.UtilityGroupOf(word); ok {
		return strings.Contains(word, "-") || !c.componentWord(word)
	}
	return strings.Contains(word, "-") && slices.Contains(vocabulary, word)
}

func (c *Context) componentWord(word string) bool {
	for _, target := range c.Targets {
		if slices.Contains(variantParts(target.Def), word) {
			return true
		}
		for _, modifier := range target.Def.Modifiers {
			if modifier.Name == word || slices.Contains(modifier.Keywords, word) {
				return true
			}
		}
	}
	return false
}

func (c *Context) addClass(class string) (Edit, bool) {
	for _, target := range c.Targets {
		if _, ok := target.Def.VariantForClass(class); ok {
			holder := c.variantHolder(target)
			old := currentVariant(target.Def, holder).Class
			return classEdit(OpAddClass, target.Def.ID, holder, old, class), true
		}
		for _, modifier := range target.Def.Modifiers {
			if modifier.Class != class {
				continue
			}
			node := c.modifierElement(target, modifier)
			return classEdit(OpAddClass, target.Def.ID, node, groupClass(target.Def, modifier, node), class), true
		}
	}

	component, node := "", firstElement(c.Roots)
	if len(c.Targets) > 0 {
		component, node = c.Targets[0].Def.ID, c.Targets[0].Node
	}
	if node == nil {
		return Edit{}, false
	}
	old := ""
	if group, ok := c.Registry.UtilityGroupOf(class); ok && group.Exclusive {
		if idx := slices.IndexFunc(node.Classes(), func(existing string) bool {
			return existing != class && slices.Contains(group.Classes, existing)
		}); idx >= 0 {
			old = node.Classes()[idx]
		}
	}
	return classEdit(OpAddClass, component, node, old, class), true
}

func classEdit(operation, component string, node *markup.Node, old, class string) Edit {
	summary := fmt.Sprintf("added %s to <%s>", class, node.Tag)
	if old != "" {
		summary = fmt.Sprintf("replaced %s with %s on <%s>", old, class, node.Tag)
	}
	return Edit{
		Operation: operation,
		Component: component,
		Summary:   summary,
		Apply:     func() { replaceClass(node, old, class) },
	}
}

func (c *Context) removeClass(class string) (Edit, bool) {
	for _, target := range c.Targets {
		if found := markup.Find([]*markup.Node{target.Node}, markup.ByClass(class)); len(found) > 0 {
			return removeEdit(OpRemoveClass, target.Def.ID, found[0], class), true
		}
	}
	if found := markup.Find(c.Roots, markup.ByClass(class)); len(found) > 0 {
		return removeEdit(OpRemoveClass, "", found[0], class), true
	}
	return Edit{}, false
}

func removeEdit(operation, component string, node *markup.Node, class string) Edit {
	return Edit{
		Operation: operation,
		Component: component,
		Summary:   fmt.Sprintf("removed %s from <%s>", class, node.Tag),
		Apply:     func() { node.RemoveClass(class) },
	}
}

// variantParts lists the hyphen-separated words of every variant name.
func variantParts(def *catalog.ComponentDefinition) []string {
	var out []string
	for _, variant := range def.Variants {
		for _, part := range strings.Split(variant.Name, "-") {
			if !slices.Contains(out, part) {
				out = append(out, part)
			}
		}
	}
	return out
}

var (
	explicitVariantWords = []string{"variant", "style", "color", "colour", "theme"}
	solidWords           = []string{"solid", "filled", "fill"}
)

func matchSwapVariant(ctx *Context) (Edit, bool) {
	for _, target := range ctx.Targets {
		if len(target.Def.Variants) < 2 {
			continue
		}
		holder := ctx.variantHolder(target)
		current := currentVariant(target.Def, holder)
		next, ok := ctx.pickVariant(target.Def, current)
		if !ok {
			continue
		}
		summary := fmt.Sprintf("%s variant %s to %s", target.Def.ID, current.Name, next.Name)
		if next.Name == current.Name {
			summary = fmt.Sprintf("%s already uses the %s variant", target.Def.ID, current.Name)
		}
		old, class := current.Class, next.Class
		return Edit{
			Operation: OpSwapVariant,
			Component: target.Def.ID,
			Summary:   summary,
			Apply:     func() { replaceClass(holder, old, class) },
		}, true
	}
	return Edit{}, false
}

// pickVariant chooses the variant a request asks for. The last full variant
// name wins when the request is explicit about it; otherwise variants are scored
// by the words they share with the request and with the current variant,
// so "red" on outline-primary keeps the outline axis.
func (c *Context) pickVariant(def *catalog.ComponentDefinition, current catalog.Variant) (catalog.Variant, bool) {
	req := c.Request
	lexicon := c.Registry.Lexicon()
	consumed := modifierWords(req, def)

	explicit := req.Has(explicitVariantWords...)
	for idx := len(req.Words) - 1; idx >= 0; idx-- {
		word := req.Words[idx]
		if consumed[idx] {
			continue
		}
		if variant, ok := def.Variant(lexicon.Canonical(word)); ok && (explicit || strings.Contains(word, "-")) {
			return variant, true
		}
	}

	universe := variantParts(def)
	mentioned := make(map[string]bool)
	for idx, word := range req.Words {
		if consumed[idx] {
			continue
		}
		for _, part := range strings.Split(word, "-") {
			if canonical := lexicon.Canonical(part); slices.Contains(universe, canonical) {
				mentioned[canonical] = true
			}
		}
	}
	solid := req.Has(solidWords...)
	if len(mentioned) == 0 && !solid {
		return catalog.Variant{}, false
	}

	currentParts := strings.Split(current.Name, "-")
	best, bestScore, found := catalog.Variant{}, math.MinInt, false
	for _, variant := range def.Variants {
		parts := strings.Split(variant.Name, "-")
		if solid && slices.Contains(parts, "outline") {
			continue
		}
		hits, kept, extra := 0, 0, 0
		for _, part := range parts {
			switch {
			case mentioned[part]:
				hits++
			case slices.Contains(currentParts, part):
				kept++
			default:
				extra++
			}
		}
		if hits == 0 && len(mentioned) > 0 {
			continue
		}
		score := 2*hits + kept - extra
		if variant.Name == current.Name {
			score--
		}
		if score > bestScore {
			best, bestScore, found = variant, score, true
		}
	}
	return best, found
}

// modifierWords marks the request words that belong to a modifier phrase of
// def, such as "dark menu" on a dropdown.
func modifierWords(req Request, def *catalog.ComponentDefinition) map[int]bool {
	out := make(map[int]bool)
	for _, modifier := range def.Modifiers {
		for _, phrase := range modifierPhrases(modifier) {
			words := strings.Fields(phrase)
			if len(words) < 2 {
				continue
			}
			if start := req.Index(phrase); start >= 0 {
				for idx := start; idx < start+len(words); idx++ {
					out[idx] = true
				}
			}
		}
	}
	return out
}

func modifierPhrases(modifier catalog.Modifier) []string {
	phrases := []string{modifier.Name}
	if strings.Contains(modifier.Name, "-") {
		phrases = append(phrases, strings.ReplaceAll(modifier.Name, "-", " "))
	}
	return append(phrases, modifier.Keywords...)
}

func (c *Context) mentionsModifier(modifier catalog.Modifier) bool {
	canonical := c.canonical()
	for _, phrase := range modifierPhrases(modifier) {
		if c.Request.HasPhrase(phrase) || canonical.HasPhrase(phrase) {
			return true
		}
	}
	return false
}

// canonical returns the request with synonyms mapped onto canonical words.
func (c *Context) canonical() Request {
	lexicon := c.Registry.Lexicon()
	out := Request{Text: c.Request.Text, Quoted: c.Request.Quoted}
	for _, word := range c.Request.Words {
		out.Words = append(out.Words, lexicon.Canonical(word))
	}
	return out
}

func matchModifier(ctx *Context) (Edit, bool) {
	removing := ctx.Request.removing()
	for _, target := range ctx.Targets {
		for _, modifier := range target.Def.Modifiers {
			if !ctx.mentionsModifier(modifier) {
				continue
			}
			if removing {
				found := markup.Find([]*markup.Node{target.Node}, markup.ByClass(modifier.Class))
				if len(found) == 0 {
					continue
				}
				return removeEdit(OpRemoveModifier, target.Def.ID, found[0], modifier.Class), true
			}
			node := ctx.modifierElement(target, modifier)
			edit := classEdit(OpAddModifier, target.Def.ID, node, groupClass(target.Def, modifier, node), modifier.Class)
			return edit, true
		}
	}
	return Edit{}, false
}

func matchConvertSyntax(ctx *Context) (Edit, bool) {
	var syntax markup.Syntax
	switch {
	case ctx.Request.Has("react", "jsx", "tsx"):
		syntax = markup.JSX
	case ctx.Request.Has("html"):
		syntax = markup.HTML
	default:
		return Edit{}, false
	}
	return Edit{
		Operation: OpConvertSyntax,
		Summary:   "converted to " + syntax.String(),
		Syntax:    syntax,
	}, true
}
