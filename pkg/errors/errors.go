// Package errors provides the error taxonomy shared by the ux4g packages.
//
// It re-exports github.com/cockroachdb/errors so callers get stack traces,
// hints and details from a single import, and it defines the sentinels and
// typed errors returned by the catalog, resolver, validator and refiner:
//
//	// input errors
//	errors.Is(err, errors.ErrEmptyCode)
//	errors.Is(err, errors.ErrParse)
//
//	// resolution, refinement and lookup errors
//	var unresolved *errors.UnresolvedIntentError
//	if errors.As(err, &unresolved) {
//	    fmt.Println(unresolved.Candidates)
//	}
//
// None of these errors are fatal; they are values handed back to the caller.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Sentinels grouped by error class. Wrap them (or return the typed errors
// below) to add context while keeping errors.Is working.
var (
	// ErrEmptyCode reports absent or whitespace-only markup.
	ErrEmptyCode = New("empty code")
	// ErrParse reports malformed markup.
	ErrParse = New("parse error")

	// ErrUnresolvedIntent reports a description that maps to no component.
	ErrUnresolvedIntent = New("unresolved intent")

	// ErrOperationUnsupported reports a change request with no bounded edit.
	ErrOperationUnsupported = New("operation unsupported")

	// ErrUnknownComponent reports a component id missing from the registry.
	ErrUnknownComponent = New("unknown component id")
)

// Error classes as named by the taxonomy.
const (
	ClassInput      = "input"
	ClassResolution = "resolution"
	ClassRefinement = "refinement"
	ClassLookup     = "lookup"
	ClassInternal   = "internal"
)

// Class maps err onto its taxonomy class. Errors outside the taxonomy are
// reported as ClassInternal.
func Class(err error) string {
	switch {
	case err == nil:
		return ""
	case IsAny(err, ErrEmptyCode, ErrParse):
		return ClassInput
	case Is(err, ErrUnresolvedIntent):
		return ClassResolution
	case Is(err, ErrOperationUnsupported):
		return ClassRefinement
	case Is(err, ErrUnknownComponent):
		return ClassLookup
	default:
		return ClassInternal
	}
}

// Code returns the stable, caller-facing code for err.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrEmptyCode):
		return "EMPTY_CODE"
	case Is(err, ErrParse):
		return "PARSE_ERROR"
	case Is(err, ErrUnresolvedIntent):
		return "UNRESOLVED_INTENT"
	case Is(err, ErrOperationUnsupported):
		return "OPERATION_UNSUPPORTED"
	case Is(err, ErrUnknownComponent):
		return "UNKNOWN_COMPONENT_ID"
	default:
		return "INTERNAL"
	}
}
