package refine

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

// Result is the outcome of one refinement.
type Result struct {
	Code      string        `json:"code"`
	Operation string        `json:"operation"`
	Component string        `json:"component,omitempty"`
	Summary   string        `json:"summary"`
	Diff      string        `json:"diff,omitempty"`
	Syntax    markup.Syntax `json:"syntax"`
}

// Option customises a Refiner.
type Option func(*Refiner)

// WithLogger sets the logger used for refinement traces.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Refiner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMatchers replaces the matcher registry.
func WithMatchers(matchers *Registry) Option {
	return func(r *Refiner) {
		if matchers != nil {
			r.matchers = matchers
		}
	}
}

// WithSanitizer replaces the policy applied to quoted replacement text.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Refiner) {
		if policy != nil {
			r.sanitizer = policy
		}
	}
}

// Refiner applies one bounded edit per call to a parsed copy of the caller's
// markup. It is safe for concurrent use as long as no matcher is registered
// concurrently with Refine.
type Refiner struct {
	registry  *catalog.Registry
	matchers  *Registry
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
}

// New builds a refiner over registry; nil selects catalog.Default().
func New(registry *catalog.Registry, opts ...Option) *Refiner {
	if registry == nil {
		registry = catalog.Default()
	}
	r := &Refiner{
		registry:  registry,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.matchers == nil {
		r.matchers = NewRegistry()
	}
	return r
}

// Matchers exposes the matcher registry so callers can add operations.
func (r *Refiner) Matchers() *Registry {
	return r.matchers
}

// Refine parses code, applies the edit the request maps to and serializes
// the result in syntax. An empty syntax keeps the syntax of the input.
// Requests that map to no operation fail with OperationUnsupportedError; the
// markup is never rewritten freely.
func (r *Refiner) Refine(code, request string, syntax markup.Syntax) (Result, error) {
	if strings.TrimSpace(code) == "" {
		return Result{}, errors.WithHint(errors.ErrEmptyCode, "pass the markup to refine")
	}
	input := markup.DetectSyntax(code)
	if syntax == "" {
		syntax = input
	}
	if !syntax.Valid() {
		return Result{}, errors.Newf("refine: unsupported syntax %q", syntax)
	}
	roots, err := markup.Parse(code, input)
	if err != nil {
		return Result{}, err
	}

	ctx := newContext(r.registry, roots, ParseRequest(request), r.clean)
	edit, name, ok := r.matchers.Resolve(ctx)
	if !ok {
		return Result{}, unsupported(request, ctx.ComponentIDs())
	}

	before := markup.Render(roots, input)
	if edit.Apply != nil {
		edit.Apply()
	}
	if edit.Syntax != "" {
		syntax = edit.Syntax
	}
	after := markup.Render(roots, syntax)

	r.logger.Debug("snippet refined",
		zap.String("matcher", name),
		zap.String("operation", edit.Operation),
		zap.String("component", edit.Component),
		zap.String("syntax", syntax.String()),
	)
	return Result{
		Code:      after,
		Operation: edit.Operation,
		Component: edit.Component,
		Summary:   edit.Summary,
		Diff:      LineDiff(before, after),
		Syntax:    syntax,
	}, nil
}

func unsupported(request string, components []string) error {
	return errors.WithHint(&errors.OperationUnsupportedError{Request: request, Components: components},
		"supported edits: quoted text for a label or title, disable/enable, require/optional, "+
			"add or remove a class, change the variant, add or remove a modifier, convert to jsx or html")
}

// clean strips markup and template braces from replacement text.
func (r *Refiner) clean(value string) string {
	value = html.UnescapeString(r.sanitizer.Sanitize(value))
	return strings.TrimSpace(strings.NewReplacer("{", "", "}", "").Replace(value))
}

// LineDiff renders a line-oriented diff: unchanged lines start with two
// spaces, removed lines with "- " and added lines with "+ ". Equal inputs
// give an empty diff.
func LineDiff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before+"\n", after+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + strings.TrimSuffix(line, "\n") + "\n")
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}
