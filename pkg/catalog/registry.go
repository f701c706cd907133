package catalog

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Registry is the immutable component catalog. It is built once by LoadFS or
// Default and is safe for concurrent readers without synchronisation.
type Registry struct {
	name       string
	title      string
	version    string
	assets     assetsFile
	components map[string]*ComponentDefinition
	ids        []string
	order      []string
	tokens     []Token
	lexicon    *Lexicon
	utilities  []UtilityGroup
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded definitions. The
// embedded data is validated by tests, so a failure here is a programming
// error and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := LoadFS(EmbeddedFS())
		if err != nil {
			panic(err)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

func newRegistry(b *builder) *Registry {
	ids := make([]string, 0, len(b.components))
	for id := range b.components {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &Registry{
		name:       b.header.Name,
		title:      b.header.Title,
		version:    b.header.Version,
		assets:     b.header.Assets,
		components: b.components,
		ids:        ids,
		order:      slices.Clone(b.order),
		tokens:     slices.Clone(b.tokens),
		lexicon:    b.lexicon,
		utilities:  slices.Clone(b.utilities),
	}
}

// Name returns the catalog name.
func (r *Registry) Name() string { return r.name }

// Title returns the human readable catalog title.
func (r *Registry) Title() string { return r.title }

// Version returns the catalog version string.
func (r *Registry) Version() string { return r.version }

// IDs returns every component id, sorted.
func (r *Registry) IDs() []string {
	return slices.Clone(r.ids)
}

// Ordered returns the definitions in declaration order. The resolver uses it
// to break ties deterministically.
func (r *Registry) Ordered() []*ComponentDefinition {
	out := make([]*ComponentDefinition, len(r.order))
	for idx, id := range r.order {
		out[idx] = r.components[id]
	}
	return out
}

// List returns the definitions matching filter, ordered by id. No match yields
// an empty slice.
func (r *Registry) List(filter Filter) []*ComponentDefinition {
	out := make([]*ComponentDefinition, 0, len(r.ids))
	for _, id := range r.ids {
		if def := r.components[id]; filter.Match(def) {
			out = append(out, def)
		}
	}
	return out
}

// Get returns the definition whose id is exactly id, or an
// *errors.UnknownComponentError that lists the nearest ids. Ids are matched
// case-sensitively; "Button" is unknown and suggests "button".
func (r *Registry) Get(id string) (*ComponentDefinition, error) {
	if def, ok := r.components[id]; ok {
		return def, nil
	}
	return nil, errors.WithHint(
		&errors.UnknownComponentError{ID: id, Suggestions: r.Suggest(id, 3)},
		"call list_components to see the available ids",
	)
}

// Lookup is Get without the error.
func (r *Registry) Lookup(id string) (*ComponentDefinition, bool) {
	def, ok := r.components[id]
	return def, ok
}

// Suggest ranks component ids by closeness to query: ids containing the query
// come first, then by Levenshtein distance and id.
func (r *Registry) Suggest(query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	type ranked struct {
		id       string
		contains bool
		distance int
	}
	candidates := make([]ranked, 0, len(r.ids))
	for _, id := range r.ids {
		distance := fuzzy.LevenshteinDistance(query, id)
		contains := fuzzy.MatchFold(query, id) || fuzzy.MatchFold(id, query)
		if !contains && distance > max(len(id), len(query))/2+1 {
			continue
		}
		candidates = append(candidates, ranked{id: id, contains: contains, distance: distance})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].contains != candidates[j].contains {
			return candidates[i].contains
		}
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].id < candidates[j].id
	})

	out := make([]string, 0, min(limit, len(candidates)))
	for _, candidate := range candidates {
		if len(out) == limit {
			break
		}
		out = append(out, candidate.id)
	}
	return out
}

// Vocabulary returns every class the named components can emit: literal
// template classes, variant classes and modifier classes. With no ids the
// whole catalog is covered. Unknown ids are ignored.
func (r *Registry) Vocabulary(ids ...string) []string {
	if len(ids) == 0 {
		ids = r.ids
	}
	set := make(map[string]struct{})
	for _, id := range ids {
		def, ok := r.Lookup(id)
		if !ok {
			continue
		}
		for _, tmpl := range def.Templates {
			for _, class := range tmpl.Classes() {
				set[class] = struct{}{}
			}
		}
		for _, variant := range def.Variants {
			for _, class := range strings.Fields(variant.Class) {
				set[class] = struct{}{}
			}
		}
		for _, modifier := range def.Modifiers {
			set[modifier.Class] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for class := range set {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

// VariantClasses returns the non-empty variant classes of id in declaration
// order.
func (r *Registry) VariantClasses(id string) []string {
	def, ok := r.Lookup(id)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(def.Variants))
	for _, variant := range def.Variants {
		if variant.Class != "" {
			out = append(out, variant.Class)
		}
	}
	return out
}

// Tokens returns the design tokens of tokenType, or all tokens when tokenType
// is empty or "all".
func (r *Registry) Tokens(tokenType string) []Token {
	tokenType = strings.ToLower(strings.TrimSpace(tokenType))
	out := make([]Token, 0, len(r.tokens))
	for _, token := range r.tokens {
		if tokenType == "" || tokenType == "all" || strings.EqualFold(token.Type, tokenType) {
			out = append(out, token)
		}
	}
	return out
}

// TokenTypes lists the distinct token types in first-seen order.
func (r *Registry) TokenTypes() []string {
	var out []string
	for _, token := range r.tokens {
		if !slices.Contains(out, token.Type) {
			out = append(out, token.Type)
		}
	}
	return out
}

// Lexicon returns the word lists used for matching.
func (r *Registry) Lexicon() *Lexicon {
	return r.lexicon
}

// Utilities returns the utility class groups.
func (r *Registry) Utilities() []UtilityGroup {
	return slices.Clone(r.utilities)
}

// UtilityGroupOf returns the group class belongs to.
func (r *Registry) UtilityGroupOf(class string) (UtilityGroup, bool) {
	for _, group := range r.utilities {
		if slices.Contains(group.Classes, class) {
			return group, true
		}
	}
	return UtilityGroup{}, false
}

// AssetURL resolves a dependency file name (e.g. "ux4g.min.css") to its CDN
// location. Unknown names are returned unchanged.
func (r *Registry) AssetURL(name string) string {
	file, ok := r.assets.Files[name]
	if !ok {
		return name
	}
	return strings.TrimSuffix(r.assets.Prefix, "/") + "/" + strings.TrimPrefix(file, "/")
}

// Identify returns the definitions whose signature matches node, in
// declaration order.
func (r *Registry) Identify(node *markup.Node) []*ComponentDefinition {
	var out []*ComponentDefinition
	for _, id := range r.order {
		if def := r.components[id]; def.Matches(node) {
			out = append(out, def)
		}
	}
	return out
}

// Recognise lists the ids of the components present in nodes, in order of
// first appearance.
func (r *Registry) Recognise(nodes []*markup.Node) []string {
	var out []string
	markup.Walk(nodes, func(v markup.Visit) {
		for _, def := range r.Identify(v.Node) {
			if !slices.Contains(out, def.ID) {
				out = append(out, def.ID)
			}
		}
	})
	return out
}
