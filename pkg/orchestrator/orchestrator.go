package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/generator"
	"github.com/goliatone/go-ux4g/pkg/intent"
	"github.com/goliatone/go-ux4g/pkg/markup"
	"github.com/goliatone/go-ux4g/pkg/practices"
	"github.com/goliatone/go-ux4g/pkg/refine"
	"github.com/goliatone/go-ux4g/pkg/validation"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a component registry. It takes precedence over
// WithCatalogFS.
func WithRegistry(registry *catalog.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithCatalogFS loads the registry from fsys instead of the embedded catalog.
func WithCatalogFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.catalogFS = fsys
	}
}

// WithLogger sets the logger handed to every engine.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithDefaultSyntax overrides the syntax used when a generate request omits
// one.
func WithDefaultSyntax(syntax markup.Syntax) Option {
	return func(o *Orchestrator) {
		o.defaultSyntax = syntax
	}
}

// WithPractices replaces the embedded best-practice knowledge base.
func WithPractices(kb *practices.KnowledgeBase) Option {
	return func(o *Orchestrator) {
		o.practices = kb
	}
}

// WithThemeVariant selects the token variant served when a token request
// omits one (for example catalog.DarkVariant).
func WithThemeVariant(variant string) Option {
	return func(o *Orchestrator) {
		o.themeVariant = variant
	}
}

// WithRefineMatchers replaces the refinement operation registry.
func WithRefineMatchers(matchers *refine.Registry) Option {
	return func(o *Orchestrator) {
		o.matchers = matchers
	}
}

// WithSanitizer sets the policy applied to caller supplied text in generated
// and refined markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(o *Orchestrator) {
		o.sanitizer = policy
	}
}

// Orchestrator exposes the catalog operations behind one type. Every
// dependency has a built-in default (embedded catalog, embedded practices,
// HTML output) and can be replaced through options. Once constructed it holds
// no mutable state and is safe for concurrent use.
type Orchestrator struct {
	registry      *catalog.Registry
	catalogFS     fs.FS
	generator     *generator.Generator
	validator     *validation.Validator
	refiner       *refine.Refiner
	practices     *practices.KnowledgeBase
	themes        *catalog.ThemeSelector
	themeVariant  string
	matchers      *refine.Registry
	sanitizer     *bluemonday.Policy
	logger        *zap.Logger
	defaultSyntax markup.Syntax
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options. Construction
// never fails; a bad catalog or theme variant is reported by every call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger:        zap.NewNop(),
		defaultSyntax: markup.HTML,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if !o.defaultSyntax.Valid() {
		o.initialiseErr = fmt.Errorf("orchestrator: unsupported default syntax %q", o.defaultSyntax)
		return
	}
	if o.registry == nil {
		if o.catalogFS != nil {
			registry, err := catalog.LoadFS(o.catalogFS)
			if err != nil {
				o.initialiseErr = fmt.Errorf("orchestrator: load catalog: %w", err)
				return
			}
			o.registry = registry
		} else {
			o.registry = catalog.Default()
		}
	}
	if o.practices == nil {
		o.practices = practices.Default()
	}

	themes, err := catalog.NewThemeSelector(o.registry, o.themeVariant)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: theme: %w", err)
		return
	}
	o.themes = themes

	o.generator = generator.New(o.registry,
		generator.WithLogger(o.logger.Named("generator")),
		generator.WithResolver(intent.New(o.registry,
			intent.WithLogger(o.logger.Named("intent")),
			intent.WithSanitizer(o.sanitizer),
		)),
		generator.WithSanitizer(o.sanitizer),
	)
	o.validator = validation.New(o.registry, validation.WithLogger(o.logger.Named("validation")))
	o.refiner = refine.New(o.registry,
		refine.WithLogger(o.logger.Named("refine")),
		refine.WithMatchers(o.matchers),
		refine.WithSanitizer(o.sanitizer),
	)
}

// Registry returns the component registry, or nil when initialisation
// failed.
func (o *Orchestrator) Registry() *catalog.Registry {
	return o.registry
}

// GenerateRequest asks for markup matching a description.
type GenerateRequest struct {
	Description string
	// Syntax selects the output; empty uses the configured default.
	Syntax markup.Syntax
}

// ValidateRequest asks for the issues in a snippet.
type ValidateRequest struct {
	Code string
	// Syntax of Code; empty detects it.
	Syntax markup.Syntax
}

// RefineRequest asks for one bounded edit to a snippet.
type RefineRequest struct {
	Code    string
	Request string
	// Syntax selects the output; empty keeps the input syntax.
	Syntax markup.Syntax
}

// ComponentUsage is a component definition with a ready-to-paste snippet.
type ComponentUsage struct {
	Component    *catalog.ComponentDefinition `json:"component"`
	Code         string                       `json:"code"`
	Syntax       markup.Syntax                `json:"syntax"`
	Dependencies []string                     `json:"dependencies,omitempty"`
	Notes        []string                     `json:"notes,omitempty"`
}

// TokenSet is the answer to a token listing.
type TokenSet struct {
	Type    string            `json:"type,omitempty"`
	Variant string            `json:"variant,omitempty"`
	Tokens  []catalog.Token   `json:"tokens"`
	CSSVars map[string]string `json:"cssVars"`
}

// VersionInfo describes the loaded catalog.
type VersionInfo struct {
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Version    string            `json:"version"`
	Assets     map[string]string `json:"assets"`
	Components int               `json:"components"`
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

// ListComponents returns the definitions matching filter, ordered by id.
func (o *Orchestrator) ListComponents(ctx context.Context, filter catalog.Filter) ([]*catalog.ComponentDefinition, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	return o.registry.List(filter), nil
}

// GetComponent returns the definition for id.
func (o *Orchestrator) GetComponent(ctx context.Context, id string) (*catalog.ComponentDefinition, error) {
	if err := o.ready(ctx); err != nil {
		return nil, err
	}
	return o.registry.Get(id)
}

// UseComponent returns the definition for id together with its snippet in
// variant (empty uses the declared default) and syntax.
func (o *Orchestrator) UseComponent(ctx context.Context, id, variant string, syntax markup.Syntax) (ComponentUsage, error) {
	if err := o.ready(ctx); err != nil {
		return ComponentUsage{}, err
	}
	def, err := o.registry.Get(id)
	if err != nil {
		return ComponentUsage{}, err
	}
	if syntax == "" {
		syntax = o.defaultSyntax
	}
	result, err := o.generator.Render([]intent.Intent{{ComponentID: def.ID, Variant: variant}}, syntax, nil)
	if err != nil {
		return ComponentUsage{}, err
	}
	return ComponentUsage{
		Component:    def,
		Code:         result.Code,
		Syntax:       result.Syntax,
		Dependencies: result.Dependencies,
		Notes:        result.Notes,
	}, nil
}

// Generate resolves the description and renders the matching components.
func (o *Orchestrator) Generate(ctx context.Context, req GenerateRequest) (generator.Result, error) {
	if err := o.ready(ctx); err != nil {
		return generator.Result{}, err
	}
	syntax := req.Syntax
	if syntax == "" {
		syntax = o.defaultSyntax
	}
	return o.generator.Generate(req.Description, syntax)
}

// Render instantiates explicit intents, bypassing description matching.
// An empty syntax uses the configured default.
func (o *Orchestrator) Render(ctx context.Context, intents []intent.Intent, syntax markup.Syntax) (generator.Result, error) {
	if err := o.ready(ctx); err != nil {
		return generator.Result{}, err
	}
	if syntax == "" {
		syntax = o.defaultSyntax
	}
	return o.generator.Render(intents, syntax, nil)
}

// Validate checks a snippet. Issues are data; the error is reserved for an
// unsupported syntax or a cancelled context.
func (o *Orchestrator) Validate(ctx context.Context, req ValidateRequest) (validation.Result, error) {
	if err := o.ready(ctx); err != nil {
		return validation.Result{}, err
	}
	return o.validator.Validate(req.Code, req.Syntax)
}

// Refine applies one bounded edit to a snippet.
func (o *Orchestrator) Refine(ctx context.Context, req RefineRequest) (refine.Result, error) {
	if err := o.ready(ctx); err != nil {
		return refine.Result{}, err
	}
	return o.refiner.Refine(req.Code, req.Request, req.Syntax)
}

// Tokens lists the design tokens of tokenType (empty lists all) with values
// taken from variant. An empty variant uses the configured theme variant.
func (o *Orchestrator) Tokens(ctx context.Context, tokenType, variant string) (TokenSet, error) {
	if err := o.ready(ctx); err != nil {
		return TokenSet{}, err
	}
	sel, err := o.themes.Select("", variant)
	if err != nil {
		return TokenSet{}, err
	}
	cfg := o.registry.RendererConfig(sel)

	tokens := o.registry.Tokens(tokenType)
	set := TokenSet{
		Type:    tokenType,
		Variant: sel.Variant,
		Tokens:  make([]catalog.Token, 0, len(tokens)),
		CSSVars: make(map[string]string, len(tokens)),
	}
	for _, token := range tokens {
		if value, ok := cfg.Tokens[token.Name]; ok {
			token.Value = value
		}
		set.Tokens = append(set.Tokens, token)
		if name := cssVariable(token); cfg.CSSVars[name] != "" {
			set.CSSVars[name] = cfg.CSSVars[name]
		}
	}
	return set, nil
}

func cssVariable(token catalog.Token) string {
	if token.CSSVariable != "" {
		return token.CSSVariable
	}
	return "--" + token.Name
}

// Practices queries the best-practice knowledge base.
func (o *Orchestrator) Practices(ctx context.Context, query string, limit int) (practices.Result, error) {
	if err := o.ready(ctx); err != nil {
		return practices.Result{}, err
	}
	return o.practices.Query(query, limit), nil
}

// Version describes the loaded catalog and its CDN assets.
func (o *Orchestrator) Version(ctx context.Context) (VersionInfo, error) {
	if err := o.ready(ctx); err != nil {
		return VersionInfo{}, err
	}
	files := o.registry.ThemeManifest().Assets.Files
	assets := make(map[string]string, len(files))
	for name := range files {
		assets[name] = o.registry.AssetURL(name)
	}
	return VersionInfo{
		Name:       o.registry.Name(),
		Title:      o.registry.Title(),
		Version:    o.registry.Version(),
		Assets:     assets,
		Components: len(o.registry.IDs()),
	}, nil
}
