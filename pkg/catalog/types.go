package catalog

import (
	"slices"
	"strings"

	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Kind values accepted by Filter.Kind.
const (
	KindLayout    = "layout"
	KindComponent = "component"
)

// CategoryLayout is the category that Filter.Kind treats as layout.
const CategoryLayout = "layout"

// Variant names one value of a component's styling axis and the class it
// resolves to. An empty Class is allowed (e.g. the default modal size).
type Variant struct {
	Name  string `json:"name" yaml:"name"`
	Class string `json:"class,omitempty" yaml:"class"`
}

// Modifier is an optional class applied on top of the variant. Modifiers that
// share a Group are mutually exclusive. Target names the template class whose
// element receives the modifier; empty means the element carrying the variant
// slot, or the first root when there is none.
type Modifier struct {
	Name     string   `json:"name" yaml:"name"`
	Class    string   `json:"class" yaml:"class"`
	Group    string   `json:"group,omitempty" yaml:"group"`
	Target   string   `json:"target,omitempty" yaml:"target"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords"`
}

// Preset maps request keywords (e.g. "submit", "email field") onto a variant
// and slot values.
type Preset struct {
	Keywords []string          `json:"keywords" yaml:"keywords"`
	Variant  string            `json:"variant,omitempty" yaml:"variant"`
	Slots    map[string]string `json:"slots,omitempty" yaml:"slots"`
}

// ChildSpec describes a nested intent a container inserts when the request
// names no children of its own.
type ChildSpec struct {
	Component string            `json:"component" yaml:"component"`
	Variant   string            `json:"variant,omitempty" yaml:"variant"`
	Slots     map[string]string `json:"slots,omitempty" yaml:"slots"`
}

// ComponentDefinition is a curated catalog entry. Definitions are owned by the
// Registry and must be treated as read-only by callers.
type ComponentDefinition struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Category       string      `json:"category"`
	Description    string      `json:"description,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Keywords       []string    `json:"keywords,omitempty"`
	RequiresJS     bool        `json:"requiresJs"`
	JSInit         string      `json:"jsInit,omitempty"`
	Variants       []Variant   `json:"variants,omitempty"`
	DefaultVariant string      `json:"defaultVariant,omitempty"`
	Modifiers      []Modifier  `json:"modifiers,omitempty"`
	Presets        []Preset    `json:"presets,omitempty"`
	Signature      []string    `json:"signature,omitempty"`
	TextSlot       string      `json:"textSlot,omitempty"`
	ButtonSlot     string      `json:"buttonSlot,omitempty"`
	Container      bool        `json:"container,omitempty"`
	Children       []ChildSpec `json:"defaultChildren,omitempty"`
	Dependencies   []string    `json:"dependencies,omitempty"`
	ARIARoles      []string    `json:"ariaRoles,omitempty"`

	Templates map[markup.Syntax]*Template `json:"-"`
}

// Matches reports whether node is the root of this component, using the
// signature selectors ("tag", ".class" or "tag.class").
func (d *ComponentDefinition) Matches(node *markup.Node) bool {
	if !node.IsElement() {
		return false
	}
	for _, selector := range d.Signature {
		tag, class, _ := strings.Cut(selector, ".")
		if tag != "" && tag != node.Tag {
			continue
		}
		if class != "" && !node.HasClass(class) {
			continue
		}
		return true
	}
	return false
}

// Kind reports whether the definition is layout or a regular component.
func (d *ComponentDefinition) Kind() string {
	if d.Category == CategoryLayout {
		return KindLayout
	}
	return KindComponent
}

// HasTag reports whether tag is declared, ignoring case.
func (d *ComponentDefinition) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return slices.ContainsFunc(d.Tags, func(candidate string) bool {
		return strings.ToLower(candidate) == tag
	})
}

// Variant looks up a declared variant by name.
func (d *ComponentDefinition) Variant(name string) (Variant, bool) {
	for _, variant := range d.Variants {
		if variant.Name == name {
			return variant, true
		}
	}
	return Variant{}, false
}

// HasVariant reports whether name is a declared variant.
func (d *ComponentDefinition) HasVariant(name string) bool {
	_, ok := d.Variant(name)
	return ok
}

// VariantNames lists the declared variants in declaration order.
func (d *ComponentDefinition) VariantNames() []string {
	names := make([]string, len(d.Variants))
	for idx, variant := range d.Variants {
		names[idx] = variant.Name
	}
	return names
}

// VariantForClass returns the variant whose class is class.
func (d *ComponentDefinition) VariantForClass(class string) (Variant, bool) {
	if class == "" {
		return Variant{}, false
	}
	for _, variant := range d.Variants {
		if variant.Class == class {
			return variant, true
		}
	}
	return Variant{}, false
}

// Modifier looks up a modifier by name.
func (d *ComponentDefinition) Modifier(name string) (Modifier, bool) {
	for _, modifier := range d.Modifiers {
		if modifier.Name == name {
			return modifier, true
		}
	}
	return Modifier{}, false
}

// Template returns the template for syntax, or nil.
func (d *ComponentDefinition) Template(syntax markup.Syntax) *Template {
	if d.Templates == nil {
		return nil
	}
	return d.Templates[syntax]
}

// SupportedSyntaxes lists the syntaxes the definition can be rendered in.
func (d *ComponentDefinition) SupportedSyntaxes() []markup.Syntax {
	out := make([]markup.Syntax, 0, len(d.Templates))
	for _, syntax := range markup.Syntaxes() {
		if _, ok := d.Templates[syntax]; ok {
			out = append(out, syntax)
		}
	}
	return out
}

// Filter selects definitions in Registry.List. Zero fields match everything.
type Filter struct {
	Category   string
	Tag        string
	RequiresJS *bool
	Kind       string
}

// Match reports whether def satisfies every populated predicate.
func (f Filter) Match(def *ComponentDefinition) bool {
	if def == nil {
		return false
	}
	if category := strings.TrimSpace(f.Category); category != "" && !strings.EqualFold(def.Category, category) {
		return false
	}
	if tag := strings.TrimSpace(f.Tag); tag != "" && !def.HasTag(tag) {
		return false
	}
	if f.RequiresJS != nil && def.RequiresJS != *f.RequiresJS {
		return false
	}
	if kind := strings.TrimSpace(f.Kind); kind != "" && !strings.EqualFold(def.Kind(), kind) {
		return false
	}
	return true
}

// Token is a design token exposed by the catalog.
type Token struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Value       string `json:"value" yaml:"value"`
	Dark        string `json:"dark,omitempty" yaml:"dark"`
	CSSVariable string `json:"cssVariable,omitempty" yaml:"css_variable"`
	CSSClass    string `json:"cssClass,omitempty" yaml:"css_class"`
	Description string `json:"description,omitempty" yaml:"description"`
	Usage       string `json:"usage,omitempty" yaml:"usage"`
}
