// Package ux4g generates, validates and refines UX4G design system markup.
//
// The root package re-exports the orchestrator constructor and the request
// and result types so most callers need a single import:
//
//	orch := ux4g.NewOrchestrator()
//	result, err := orch.Generate(ctx, ux4g.GenerateRequest{
//		Description: "primary button labeled Submit",
//	})
package ux4g

import (
	"context"

	"github.com/goliatone/go-ux4g/pkg/generator"
	"github.com/goliatone/go-ux4g/pkg/markup"
	"github.com/goliatone/go-ux4g/pkg/orchestrator"
	"github.com/goliatone/go-ux4g/pkg/refine"
	"github.com/goliatone/go-ux4g/pkg/validation"
)

// Syntax selects plain HTML or JSX output.
type Syntax = markup.Syntax

const (
	HTML = markup.HTML
	JSX  = markup.JSX
)

// GenerateRequest aliases orchestrator.GenerateRequest.
type GenerateRequest = orchestrator.GenerateRequest

// ValidateRequest aliases orchestrator.ValidateRequest.
type ValidateRequest = orchestrator.ValidateRequest

// RefineRequest aliases orchestrator.RefineRequest.
type RefineRequest = orchestrator.RefineRequest

// Snippet is the result of a generation.
type Snippet = generator.Result

// Report is the result of a validation.
type Report = validation.Result

// Refinement is the result of a refinement.
type Refinement = refine.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateSnippet resolves description against the embedded catalog and
// renders it in syntax. It is the simplest entry point for callers that just
// want markup.
func GenerateSnippet(ctx context.Context, description string, syntax Syntax, options ...orchestrator.Option) (Snippet, error) {
	return orchestrator.New(options...).Generate(ctx, GenerateRequest{
		Description: description,
		Syntax:      syntax,
	})
}

// ValidateSnippet checks code against the catalog rules. An empty syntax is
// detected from the code.
func ValidateSnippet(ctx context.Context, code string, syntax Syntax, options ...orchestrator.Option) (Report, error) {
	return orchestrator.New(options...).Validate(ctx, ValidateRequest{
		Code:   code,
		Syntax: syntax,
	})
}

// RefineSnippet applies the single edit request describes to code.
func RefineSnippet(ctx context.Context, code, request string, syntax Syntax, options ...orchestrator.Option) (Refinement, error) {
	return orchestrator.New(options...).Refine(ctx, RefineRequest{
		Code:    code,
		Request: request,
		Syntax:  syntax,
	})
}
