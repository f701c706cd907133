package validation

import "github.com/goliatone/go-ux4g/pkg/markup"

// Severity grades an issue. Only SeverityError makes a result invalid.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the kind of issue.
type Code string

const (
	CodeEmptyCode            Code = "EMPTY_CODE"
	CodeParseError           Code = "PARSE_ERROR"
	CodeMissingButtonVariant Code = "MISSING_BUTTON_VARIANT"
	CodeMissingModalID       Code = "MISSING_MODAL_ID"
	CodeMissingFormClass     Code = "MISSING_FORM_CLASS"
	CodeMissingLabel         Code = "MISSING_LABEL"
	CodeMissingAltText       Code = "MISSING_ALT_TEXT"
	CodeRowWithoutContainer  Code = "ROW_WITHOUT_CONTAINER"
)

// Issue is one finding. Path is the element location (/div[1]/input[2]) or,
// for parse errors, the line and column.
type Issue struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"path,omitempty"`
	FixHint  string   `json:"fixHint,omitempty"`
}

// Result captures the outcome of validating one snippet.
type Result struct {
	Valid      bool          `json:"valid"`
	Issues     []Issue       `json:"issues"`
	Syntax     markup.Syntax `json:"syntax"`
	Components []string      `json:"components,omitempty"`
}

// Errors returns the error-severity issues.
func (r Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the warning-severity issues.
func (r Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

// Codes lists the issue codes in report order.
func (r Result) Codes() []Code {
	out := make([]Code, len(r.Issues))
	for idx, issue := range r.Issues {
		out[idx] = issue.Code
	}
	return out
}

func (r Result) filter(severity Severity) []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

func newResult(syntax markup.Syntax, issues []Issue) Result {
	if issues == nil {
		issues = []Issue{}
	}
	valid := true
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			valid = false
			break
		}
	}
	return Result{Valid: valid, Issues: issues, Syntax: syntax}
}
