package generator

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/intent"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Result is the output of one generation call.
type Result struct {
	Code         string        `json:"code"`
	ComponentIDs []string      `json:"componentIds"`
	Dependencies []string      `json:"dependencies,omitempty"`
	Notes        []string      `json:"notes,omitempty"`
	Syntax       markup.Syntax `json:"syntax"`
}

// Option customises a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for generation traces.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithResolver replaces the intent resolver used by Generate.
func WithResolver(resolver *intent.Resolver) Option {
	return func(g *Generator) {
		if resolver != nil {
			g.resolver = resolver
		}
	}
}

// WithSanitizer replaces the policy applied to slot values. The default is
// bluemonday's strict policy, which strips every tag.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(g *Generator) {
		if policy != nil {
			g.sanitizer = policy
		}
	}
}

// Generator instantiates catalog templates for resolved intents. It keeps no
// per-call state; identifiers come from the IDSequence handed to each call.
type Generator struct {
	registry  *catalog.Registry
	resolver  *intent.Resolver
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// New builds a generator over registry; nil selects catalog.Default().
func New(registry *catalog.Registry, opts ...Option) *Generator {
	if registry == nil {
		registry = catalog.Default()
	}
	g := &Generator{
		registry:  registry,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	if g.resolver == nil {
		g.resolver = intent.New(registry, intent.WithLogger(g.logger), intent.WithSanitizer(g.sanitizer))
	}
	return g
}

// Registry returns the registry the generator reads from.
func (g *Generator) Registry() *catalog.Registry {
	return g.registry
}

// Resolver returns the resolver used by Generate.
func (g *Generator) Resolver() *intent.Resolver {
	return g.resolver
}

// Generate resolves description and renders the resulting intents with a
// fresh identifier sequence.
func (g *Generator) Generate(description string, syntax markup.Syntax) (Result, error) {
	resolution, err := g.resolver.Resolve(description, syntax)
	if err != nil {
		return Result{}, err
	}
	return g.Render(resolution.Intents, resolution.Syntax, NewIDSequence())
}

// Render instantiates intents in order and serializes them in syntax. A nil
// ids starts a fresh sequence.
func (g *Generator) Render(intents []intent.Intent, syntax markup.Syntax, ids *IDSequence) (Result, error) {
	if syntax == "" {
		syntax = markup.HTML
	}
	if !syntax.Valid() {
		return Result{}, errors.Newf("generator: unsupported syntax %q", syntax)
	}
	if len(intents) == 0 {
		return Result{}, errors.New("generator: no intents to render")
	}
	if ids == nil {
		ids = NewIDSequence()
	}

	var nodes []*markup.Node
	var components []string
	for _, in := range intents {
		built, err := g.instantiate(in, syntax, ids, &components)
		if err != nil {
			return Result{}, err
		}
		nodes = append(nodes, built...)
	}

	result := Result{
		Code:         markup.Render(nodes, syntax),
		ComponentIDs: components,
		Syntax:       syntax,
	}
	result.Dependencies, result.Notes = g.requirements(components)

	g.logger.Debug("snippet generated",
		zap.Strings("components", components),
		zap.String("syntax", syntax.String()),
		zap.Int("bytes", len(result.Code)),
	)
	return result, nil
}

// Instantiate builds the tree for a single intent, children included.
func (g *Generator) Instantiate(in intent.Intent, syntax markup.Syntax, ids *IDSequence) ([]*markup.Node, error) {
	if ids == nil {
		ids = NewIDSequence()
	}
	var components []string
	return g.instantiate(in, syntax, ids, &components)
}

func (g *Generator) instantiate(in intent.Intent, syntax markup.Syntax, ids *IDSequence, components *[]string) ([]*markup.Node, error) {
	def, err := g.registry.Get(in.ComponentID)
	if err != nil {
		return nil, err
	}
	tmpl := def.Template(syntax)
	if tmpl == nil {
		return nil, errors.Newf("generator: component %q has no %s template", def.ID, syntax)
	}
	if in.Variant != "" && !def.HasVariant(in.Variant) {
		return nil, errors.WithHintf(
			errors.Newf("generator: component %q has no variant %q", def.ID, in.Variant),
			"declared variants: %s", strings.Join(def.VariantNames(), ", "),
		)
	}
	modifiers, err := selectModifiers(def, in.Modifiers)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(*components, def.ID) {
		*components = append(*components, def.ID)
	}

	children := in.Children
	if len(children) == 0 && def.Container {
		children = defaultChildren(def)
	}
	var childNodes []*markup.Node
	for _, child := range children {
		built, err := g.instantiate(child, syntax, ids, components)
		if err != nil {
			return nil, err
		}
		childNodes = append(childNodes, built...)
	}

	inst := &instance{
		def:      def,
		variant:  in.Variant,
		slots:    g.sanitizeSlots(in.Slots, syntax),
		ids:      ids,
		local:    make(map[string]string),
		children: childNodes,
	}
	var roots []*markup.Node
	for _, node := range tmpl.Roots {
		roots = append(roots, inst.build(node)...)
	}
	inst.applyModifiers(roots, modifiers)
	return roots, nil
}

// selectModifiers resolves modifier names. A later modifier replaces an
// earlier one from the same group.
func selectModifiers(def *catalog.ComponentDefinition, names []string) ([]catalog.Modifier, error) {
	var out []catalog.Modifier
	for _, name := range names {
		modifier, ok := def.Modifier(name)
		if !ok {
			return nil, errors.Newf("generator: component %q has no modifier %q", def.ID, name)
		}
		idx := slices.IndexFunc(out, func(existing catalog.Modifier) bool {
			return existing.Name == modifier.Name || (modifier.Group != "" && existing.Group == modifier.Group)
		})
		if idx >= 0 {
			out[idx] = modifier
			continue
		}
		out = append(out, modifier)
	}
	return out, nil
}

func defaultChildren(def *catalog.ComponentDefinition) []intent.Intent {
	out := make([]intent.Intent, 0, len(def.Children))
	for _, spec := range def.Children {
		out = append(out, intent.Intent{
			ComponentID: spec.Component,
			Variant:     spec.Variant,
			Slots:       spec.Slots,
		})
	}
	return out
}

// sanitizeSlots strips markup from slot values. The policy escapes what it
// keeps, so the text is unescaped again and left to the serializer.
func (g *Generator) sanitizeSlots(slots map[string]string, syntax markup.Syntax) map[string]string {
	out := make(map[string]string, len(slots))
	for name, value := range slots {
		clean := strings.TrimSpace(html.UnescapeString(g.sanitizer.Sanitize(value)))
		if syntax == markup.JSX {
			clean = strings.NewReplacer("{", "", "}", "").Replace(clean)
		}
		out[name] = clean
	}
	return out
}

// requirements collects the asset URLs and JavaScript notes of components.
func (g *Generator) requirements(components []string) ([]string, []string) {
	var deps, notes []string
	for _, id := range components {
		def, ok := g.registry.Lookup(id)
		if !ok {
			continue
		}
		for _, dep := range def.Dependencies {
			if url := g.registry.AssetURL(dep); !slices.Contains(deps, url) {
				deps = append(deps, url)
			}
		}
		if def.RequiresJS {
			note := fmt.Sprintf("%s requires JavaScript (ux4g.bundle.min.js).", def.Name)
			if def.JSInit != "" {
				note += " " + def.JSInit
			}
			notes = append(notes, note)
		}
	}
	return deps, notes
}
