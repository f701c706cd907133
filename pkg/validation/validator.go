package validation

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

const buttonComponent = "button"

// Option customises a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for validation traces.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// Validator runs the structural rules over parsed markup. It holds only
// read-only data and is safe for concurrent use.
type Validator struct {
	registry       *catalog.Registry
	buttonVariants []string
	rules          []Rule
	logger         *zap.Logger
}

// New builds a validator over registry; nil selects catalog.Default().
func New(registry *catalog.Registry, opts ...Option) *Validator {
	if registry == nil {
		registry = catalog.Default()
	}
	v := &Validator{
		registry:       registry,
		buttonVariants: buttonVariantClasses(registry),
		rules:          defaultRules,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// buttonVariantClasses is the union of the registry's button variant classes.
func buttonVariantClasses(registry *catalog.Registry) []string {
	var out []string
	for _, class := range registry.VariantClasses(buttonComponent) {
		out = append(out, strings.Fields(class)...)
	}
	return out
}

// Validate parses code and runs every rule in order. An empty syntax is
// detected from the code. Empty and malformed input produce a single issue
// and no rule runs. The error is reserved for an unsupported syntax.
func (v *Validator) Validate(code string, syntax markup.Syntax) (Result, error) {
	if syntax == "" {
		syntax = markup.DetectSyntax(code)
	}
	if !syntax.Valid() {
		return Result{}, errors.Newf("validation: unsupported syntax %q", syntax)
	}

	if strings.TrimSpace(code) == "" {
		return newResult(syntax, []Issue{emptyCodeIssue()}), nil
	}
	nodes, err := markup.Parse(code, syntax)
	if err != nil {
		return newResult(syntax, []Issue{parseIssue(err)}), nil
	}

	result := v.ValidateNodes(nodes, syntax)
	v.logger.Debug("snippet validated",
		zap.String("syntax", syntax.String()),
		zap.Bool("valid", result.Valid),
		zap.Int("issues", len(result.Issues)),
	)
	return result, nil
}

// ValidateNodes runs the rules over an already parsed tree.
func (v *Validator) ValidateNodes(nodes []*markup.Node, syntax markup.Syntax) Result {
	doc := newDocument(nodes, v.buttonVariants)
	var issues []Issue
	for _, rule := range v.rules {
		issues = append(issues, rule.Check(doc)...)
	}
	result := newResult(syntax, issues)
	result.Components = v.registry.Recognise(nodes)
	return result
}

func emptyCodeIssue() Issue {
	return Issue{
		Code:     CodeEmptyCode,
		Severity: SeverityError,
		Message:  "No code provided for validation",
		FixHint:  "Pass the markup to validate",
	}
}

func parseIssue(err error) Issue {
	if errors.Is(err, errors.ErrEmptyCode) {
		return emptyCodeIssue()
	}
	issue := Issue{
		Code:     CodeParseError,
		Severity: SeverityError,
		Message:  fmt.Sprintf("Failed to parse code: %v", err),
		FixHint:  "Close every element and quote attribute values",
	}
	var parseErr *errors.ParseError
	if errors.As(err, &parseErr) {
		issue.Message = "Failed to parse code: " + parseErr.Message
		if parseErr.Line > 0 {
			issue.Path = fmt.Sprintf("line %d, column %d", parseErr.Line, parseErr.Column)
		}
	}
	return issue
}
