package catalog

import (
	"fmt"
	"maps"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-ux4g/pkg/markup"
)

// DarkVariant is the theme variant built from the tokens' dark values.
const DarkVariant = "dark"

// ThemeManifest exposes the catalog as a go-theme manifest: tokens keyed by
// name, one partial per component ("components.<id>") holding its HTML
// template, the CDN assets and a dark variant for tokens that declare one.
func (r *Registry) ThemeManifest() *theme.Manifest {
	tokens := make(map[string]string, len(r.tokens))
	dark := make(map[string]string)
	for _, token := range r.tokens {
		tokens[token.Name] = token.Value
		if token.Dark != "" {
			dark[token.Name] = token.Dark
		}
	}

	templates := make(map[string]string, len(r.ids))
	for _, id := range r.ids {
		if tmpl := r.components[id].Template(markup.HTML); tmpl != nil {
			templates["components."+id] = strings.TrimSpace(tmpl.Source)
		}
	}

	manifest := &theme.Manifest{
		Name:      r.name,
		Version:   r.version,
		Tokens:    tokens,
		Templates: templates,
		Assets: theme.Assets{
			Prefix: r.assets.Prefix,
			Files:  maps.Clone(r.assets.Files),
		},
	}
	if len(dark) > 0 {
		manifest.Variants = map[string]theme.Variant{
			DarkVariant: {Tokens: dark},
		}
	}
	return manifest
}

// ThemeSelector resolves theme selections against the catalog manifest. It
// implements theme.ThemeSelector.
type ThemeSelector struct {
	manifest       *theme.Manifest
	defaultVariant string
}

var _ theme.ThemeSelector = (*ThemeSelector)(nil)

// NewThemeSelector registers the catalog manifest with a go-theme registry,
// which validates it, and returns a selector defaulting to defaultVariant
// (empty selects the base tokens).
func NewThemeSelector(r *Registry, defaultVariant string) (*ThemeSelector, error) {
	manifest := r.ThemeManifest()
	provider := theme.NewRegistry()
	if err := provider.Register(manifest); err != nil {
		return nil, fmt.Errorf("catalog: register theme %q: %w", manifest.Name, err)
	}
	if defaultVariant != "" {
		if _, ok := manifest.Variants[defaultVariant]; !ok {
			return nil, fmt.Errorf("catalog: theme %q has no variant %q", manifest.Name, defaultVariant)
		}
	}
	return &ThemeSelector{manifest: manifest, defaultVariant: defaultVariant}, nil
}

// Select returns the selection for name and variant. Empty values fall back to
// the catalog theme and the default variant.
func (s *ThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = s.manifest.Name
	}
	if name != s.manifest.Name {
		return nil, fmt.Errorf("catalog: unknown theme %q", name)
	}
	if variant == "" {
		variant = s.defaultVariant
	}
	if variant != "" {
		if _, ok := s.manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("catalog: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: s.manifest}, nil
}

// RendererConfig flattens a selection into renderer configuration: variant
// tokens and templates override the base ones, CSS variables use the token's
// declared css_variable (or "--<name>"), and AssetURL resolves file keys
// against the asset prefix.
func (r *Registry) RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest
	tokens := maps.Clone(manifest.Tokens)
	partials := maps.Clone(manifest.Templates)
	assets := theme.Assets{Prefix: manifest.Assets.Prefix, Files: maps.Clone(manifest.Assets.Files)}
	if tokens == nil {
		tokens = make(map[string]string)
	}
	if partials == nil {
		partials = make(map[string]string)
	}
	if assets.Files == nil {
		assets.Files = make(map[string]string)
	}

	if variant, ok := manifest.Variants[sel.Variant]; ok {
		maps.Copy(tokens, variant.Tokens)
		maps.Copy(partials, variant.Templates)
		maps.Copy(assets.Files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			assets.Prefix = variant.Assets.Prefix
		}
	}

	declared := make(map[string]string, len(r.tokens))
	for _, token := range r.tokens {
		if token.CSSVariable != "" {
			declared[token.Name] = token.CSSVariable
		}
	}
	cssVars := make(map[string]string, len(tokens))
	for name, value := range tokens {
		key, ok := declared[name]
		if !ok {
			key = "--" + name
		}
		cssVars[key] = value
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := assets.Files[key]
			if !ok {
				return ""
			}
			if assets.Prefix == "" {
				return file
			}
			return strings.TrimSuffix(assets.Prefix, "/") + "/" + strings.TrimPrefix(file, "/")
		},
	}
}
