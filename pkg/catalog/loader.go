package catalog

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ux4g/pkg/markup"
)

// LoadFS walks fsys and builds a registry from every YAML file found. Files
// may carry any combination of the catalog header, components, tokens and the
// vocabulary. Construction fails on the first invalid definition.
func LoadFS(fsys fs.FS) (*Registry, error) {
	if fsys == nil {
		return nil, fmt.Errorf("catalog: nil filesystem")
	}

	b := &builder{
		components: make(map[string]*ComponentDefinition),
		sources:    make(map[string]string),
		lexicon:    newLexicon(),
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("catalog: read %s: %w", path, err)
		}
		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}
		return b.add(doc, path)
	})
	if err != nil {
		return nil, err
	}

	return b.build()
}

type documentFile struct {
	Catalog    *headerFile     `yaml:"catalog"`
	Components []componentFile `yaml:"components"`
	Tokens     []Token         `yaml:"tokens"`
	Vocabulary *lexiconFile    `yaml:"vocabulary"`
}

type headerFile struct {
	Name    string     `yaml:"name"`
	Title   string     `yaml:"title"`
	Version string     `yaml:"version"`
	Assets  assetsFile `yaml:"assets"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type componentFile struct {
	ID              string      `yaml:"id"`
	Name            string      `yaml:"name"`
	Category        string      `yaml:"category"`
	Description     string      `yaml:"description"`
	Tags            []string    `yaml:"tags"`
	Keywords        []string    `yaml:"keywords"`
	RequiresJS      bool        `yaml:"requires_js"`
	JSInit          string      `yaml:"js_init"`
	Signature       []string    `yaml:"signature"`
	TextSlot        string      `yaml:"text_slot"`
	ButtonSlot      string      `yaml:"button_slot"`
	Container       bool        `yaml:"container"`
	Variants        []Variant   `yaml:"variants"`
	DefaultVariant  string      `yaml:"default_variant"`
	Modifiers       []Modifier  `yaml:"modifiers"`
	Presets         []Preset    `yaml:"presets"`
	DefaultChildren []ChildSpec `yaml:"default_children"`
	Dependencies    []string    `yaml:"dependencies"`
	ARIARoles       []string    `yaml:"aria_roles"`
	Template        string      `yaml:"template"`
	JSXTemplate     string      `yaml:"jsx_template"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("catalog: file %s is empty", source)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("catalog: parse %s: %w", source, err)
	}
	return doc, nil
}

type builder struct {
	header     *headerFile
	components map[string]*ComponentDefinition
	order      []string
	sources    map[string]string
	tokens     []Token
	lexicon    *Lexicon
	utilities  []UtilityGroup
}

func (b *builder) add(doc documentFile, source string) error {
	if doc.Catalog != nil {
		if b.header != nil {
			return fmt.Errorf("catalog: file %s redefines the catalog header", source)
		}
		b.header = doc.Catalog
	}

	for idx, raw := range doc.Components {
		def, err := normaliseComponent(raw, source, idx)
		if err != nil {
			return err
		}
		if previous, exists := b.sources[def.ID]; exists {
			return fmt.Errorf("catalog: duplicate component id %q (file %s, first defined in %s)", def.ID, source, previous)
		}
		b.components[def.ID] = def
		b.sources[def.ID] = source
		b.order = append(b.order, def.ID)
	}

	for idx, token := range doc.Tokens {
		if strings.TrimSpace(token.Name) == "" || strings.TrimSpace(token.Type) == "" {
			return fmt.Errorf("catalog: file %s token %d needs a name and a type", source, idx)
		}
		if slices.ContainsFunc(b.tokens, func(existing Token) bool { return existing.Name == token.Name }) {
			return fmt.Errorf("catalog: file %s redefines token %q", source, token.Name)
		}
		b.tokens = append(b.tokens, token)
	}

	if doc.Vocabulary != nil {
		b.lexicon.merge(*doc.Vocabulary)
		for _, group := range doc.Vocabulary.Utilities {
			if strings.TrimSpace(group.Group) == "" || len(group.Classes) == 0 {
				return fmt.Errorf("catalog: file %s defines an empty utility group", source)
			}
			b.utilities = append(b.utilities, group)
		}
	}
	return nil
}

func (b *builder) build() (*Registry, error) {
	if b.header == nil {
		return nil, fmt.Errorf("catalog: no catalog header found")
	}
	if strings.TrimSpace(b.header.Version) == "" {
		return nil, fmt.Errorf("catalog: catalog header is missing a version")
	}
	if len(b.components) == 0 {
		return nil, fmt.Errorf("catalog: no components defined")
	}

	for _, id := range b.order {
		def := b.components[id]
		for idx, child := range def.Children {
			target, ok := b.components[child.Component]
			if !ok {
				return nil, fmt.Errorf("catalog: component %q (file %s) default child %d references unknown component %q", id, b.sources[id], idx, child.Component)
			}
			if child.Variant != "" && !target.HasVariant(child.Variant) {
				return nil, fmt.Errorf("catalog: component %q (file %s) default child %d references undeclared variant %q of %q", id, b.sources[id], idx, child.Variant, child.Component)
			}
		}
	}

	return newRegistry(b), nil
}

func normaliseComponent(raw componentFile, source string, idx int) (*ComponentDefinition, error) {
	id := strings.ToLower(strings.TrimSpace(raw.ID))
	if id == "" {
		return nil, fmt.Errorf("catalog: file %s component %d has an empty id", source, idx)
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("catalog: component %q (file %s): %s", id, source, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(raw.Name) == "" {
		return nil, fail("missing name")
	}
	if strings.TrimSpace(raw.Category) == "" {
		return nil, fail("missing category")
	}
	if len(raw.Variants) == 0 {
		return nil, fail("declares no variants")
	}

	def := &ComponentDefinition{
		ID:             id,
		Name:           strings.TrimSpace(raw.Name),
		Category:       strings.ToLower(strings.TrimSpace(raw.Category)),
		Description:    strings.TrimSpace(raw.Description),
		Tags:           lowerAll(raw.Tags),
		Keywords:       lowerAll(raw.Keywords),
		RequiresJS:     raw.RequiresJS,
		JSInit:         strings.TrimSpace(raw.JSInit),
		Signature:      slices.Clone(raw.Signature),
		TextSlot:       raw.TextSlot,
		ButtonSlot:     raw.ButtonSlot,
		Container:      raw.Container,
		Children:       slices.Clone(raw.DefaultChildren),
		Variants:       slices.Clone(raw.Variants),
		DefaultVariant: raw.DefaultVariant,
		Modifiers:      slices.Clone(raw.Modifiers),
		Presets:        slices.Clone(raw.Presets),
		Dependencies:   slices.Clone(raw.Dependencies),
		ARIARoles:      slices.Clone(raw.ARIARoles),
		Templates:      make(map[markup.Syntax]*Template, 2),
	}
	if len(def.Keywords) == 0 {
		def.Keywords = []string{strings.ToLower(def.Name)}
	}

	seen := make(map[string]struct{}, len(def.Variants))
	for _, variant := range def.Variants {
		if strings.TrimSpace(variant.Name) == "" {
			return nil, fail("declares a variant without a name")
		}
		if _, dup := seen[variant.Name]; dup {
			return nil, fail("declares variant %q twice", variant.Name)
		}
		seen[variant.Name] = struct{}{}
	}
	if def.DefaultVariant == "" {
		def.DefaultVariant = def.Variants[0].Name
	}
	if !def.HasVariant(def.DefaultVariant) {
		return nil, fail("default_variant %q is not declared", def.DefaultVariant)
	}

	if strings.TrimSpace(raw.Template) == "" {
		return nil, fail("missing template")
	}
	tmpl, err := CompileTemplate(raw.Template, markup.HTML)
	if err != nil {
		return nil, fail("template: %v", err)
	}
	def.Templates[markup.HTML] = tmpl
	def.Templates[markup.JSX] = tmpl
	if strings.TrimSpace(raw.JSXTemplate) != "" {
		jsxTmpl, err := CompileTemplate(raw.JSXTemplate, markup.JSX)
		if err != nil {
			return nil, fail("jsx_template: %v", err)
		}
		def.Templates[markup.JSX] = jsxTmpl
	}

	for _, syntax := range markup.Syntaxes() {
		if err := checkTemplate(def, def.Templates[syntax]); err != nil {
			return nil, fail("%s template: %v", syntax, err)
		}
	}

	for _, preset := range def.Presets {
		if len(preset.Keywords) == 0 {
			return nil, fail("declares a preset without keywords")
		}
		if preset.Variant != "" && !def.HasVariant(preset.Variant) {
			return nil, fail("preset %v references undeclared variant %q", preset.Keywords, preset.Variant)
		}
	}

	return def, nil
}

func checkTemplate(def *ComponentDefinition, tmpl *Template) error {
	for _, seg := range tmpl.Segments(VariantSlot) {
		if seg.Default != "" && !def.HasVariant(seg.Default) {
			return fmt.Errorf("references undeclared variant %q", seg.Default)
		}
	}
	if def.Container && !tmpl.HasChildren() {
		return fmt.Errorf("container has no {{children}} insertion point")
	}
	slots := tmpl.TextSlots()
	if def.TextSlot != "" && !slices.Contains(slots, def.TextSlot) {
		return fmt.Errorf("text_slot %q is not a slot of the template", def.TextSlot)
	}
	if def.ButtonSlot != "" && !slices.Contains(slots, def.ButtonSlot) {
		return fmt.Errorf("button_slot %q is not a slot of the template", def.ButtonSlot)
	}

	classes := tmpl.Classes()
	for _, modifier := range def.Modifiers {
		if modifier.Name == "" || modifier.Class == "" {
			return fmt.Errorf("modifier needs a name and a class")
		}
		if modifier.Target != "" && !slices.Contains(classes, modifier.Target) {
			return fmt.Errorf("modifier %q targets class %q which the template does not use", modifier.Name, modifier.Target)
		}
	}
	return nil
}

func lowerAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := normaliseWord(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
