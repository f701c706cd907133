package errors

import (
	"fmt"
	"strings"
)

// ParseError locates malformed markup. Line and Column are 1-based.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return "parse error: " + e.Message
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// UnknownComponentError is returned when a registry lookup misses.
type UnknownComponentError struct {
	ID          string
	Suggestions []string
}

func (e *UnknownComponentError) Error() string {
	msg := fmt.Sprintf("unknown component id %q", e.ID)
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

// Is matches ErrUnknownComponent.
func (e *UnknownComponentError) Is(target error) bool { return target == ErrUnknownComponent }

// UnresolvedIntentError carries the ranked nearest candidates for a
// description that reached no component above the match threshold.
type UnresolvedIntentError struct {
	Description string
	Candidates  []string
}

func (e *UnresolvedIntentError) Error() string {
	msg := fmt.Sprintf("no component matches %q", e.Description)
	if len(e.Candidates) > 0 {
		msg += "; closest: " + strings.Join(e.Candidates, ", ")
	}
	return msg
}

// Is matches ErrUnresolvedIntent.
func (e *UnresolvedIntentError) Is(target error) bool { return target == ErrUnresolvedIntent }

// OperationUnsupportedError reports a change request that maps to none of the
// bounded refinement operations for the components present in the markup.
type OperationUnsupportedError struct {
	Request    string
	Components []string
}

func (e *OperationUnsupportedError) Error() string {
	if len(e.Components) == 0 {
		return fmt.Sprintf("unsupported change request %q: no known components in code", e.Request)
	}
	return fmt.Sprintf("unsupported change request %q for %s", e.Request, strings.Join(e.Components, ", "))
}

// Is matches ErrOperationUnsupported.
func (e *OperationUnsupportedError) Is(target error) bool { return target == ErrOperationUnsupported }
