package validation_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/generator"
	"github.com/goliatone/go-ux4g/pkg/markup"
	"github.com/goliatone/go-ux4g/pkg/validation"
)

func TestValidate_Scenarios(t *testing.T) {
	v := validation.New(nil)

	tests := []struct {
		name      string
		code      string
		wantValid bool
		want      []validation.Issue
	}{
		{
			name:      "button without variant",
			code:      `<button class="btn">Go</button>`,
			wantValid: true,
			want: []validation.Issue{
				{Code: validation.CodeMissingButtonVariant, Severity: validation.SeverityWarning, Path: "/button[1]"},
			},
		},
		{
			name:      "row without container",
			code:      `<div class="row"></div>`,
			wantValid: true,
			want: []validation.Issue{
				{Code: validation.CodeRowWithoutContainer, Severity: validation.SeverityWarning, Path: "/div[1]"},
			},
		},
		{
			name:      "empty",
			code:      "",
			wantValid: false,
			want: []validation.Issue{
				{Code: validation.CodeEmptyCode, Severity: validation.SeverityError},
			},
		},
		{
			name:      "whitespace",
			code:      " \n\t",
			wantValid: false,
			want: []validation.Issue{
				{Code: validation.CodeEmptyCode, Severity: validation.SeverityError},
			},
		},
		{
			name:      "comment only",
			code:      "<!-- nothing here -->",
			wantValid: false,
			want: []validation.Issue{
				{Code: validation.CodeEmptyCode, Severity: validation.SeverityError},
			},
		},
		{
			name:      "malformed",
			code:      "<div><span></div>",
			wantValid: false,
			want: []validation.Issue{
				{Code: validation.CodeParseError, Severity: validation.SeverityError, Path: "line 1, column 12"},
			},
		},
		{
			name:      "modal without id",
			code:      `<div class="modal fade"><div class="modal-dialog"></div></div>`,
			wantValid: false,
			want: []validation.Issue{
				{Code: validation.CodeMissingModalID, Severity: validation.SeverityError, Path: "/div[1]"},
			},
		},
		{
			name:      "two button variants",
			code:      `<button class="btn btn-primary btn-outline-danger">Go</button>`,
			wantValid: true,
			want: []validation.Issue{
				{Code: validation.CodeMissingButtonVariant, Severity: validation.SeverityWarning, Path: "/button[1]"},
			},
		},
		{
			name:      "paired label",
			code:      `<div class="container"><div class="row"><label for="email" class="form-label">Email</label><input type="email" id="email" class="form-control"></div></div>`,
			wantValid: true,
			want:      []validation.Issue{},
		},
		{
			name:      "non control inputs",
			code:      `<form><input type="hidden" name="csrf"><input type="submit" value="Send"></form>`,
			wantValid: true,
			want:      []validation.Issue{},
		},
		{
			name:      "control without id",
			code:      `<select class="form-select"></select>`,
			wantValid: true,
			want: []validation.Issue{
				{Code: validation.CodeMissingLabel, Severity: validation.SeverityWarning, Path: "/select[1]"},
			},
		},
		{
			name:      "empty alt",
			code:      `<img src="a.png" alt="">`,
			wantValid: true,
			want: []validation.Issue{
				{Code: validation.CodeMissingAltText, Severity: validation.SeverityWarning, Path: "/img[1]"},
			},
		},
	}

	ignore := cmp.Comparer(func(a, b validation.Issue) bool {
		return a.Code == b.Code && a.Severity == b.Severity && a.Path == b.Path
	})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.Validate(tt.code, markup.HTML)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if result.Valid != tt.wantValid {
				t.Fatalf("valid = %v, want %v (issues %+v)", result.Valid, tt.wantValid, result.Issues)
			}
			if diff := cmp.Diff(tt.want, result.Issues, ignore); diff != "" {
				t.Fatalf("issues mismatch (-want +got):\n%s", diff)
			}
			for _, issue := range result.Issues {
				if issue.Message == "" || issue.FixHint == "" {
					t.Fatalf("issue %s lacks a message or fix hint", issue.Code)
				}
			}
		})
	}
}

func TestValidate_RuleOrder(t *testing.T) {
	code := `<div class="row">
  <img src="a.png">
  <input type="text">
  <div class="modal"></div>
  <button class="btn btn-primary btn-danger">x</button>
</div>`
	result, err := validation.New(nil).Validate(code, markup.HTML)
	require.NoError(t, err)
	require.False(t, result.Valid)

	want := []validation.Code{
		validation.CodeMissingButtonVariant,
		validation.CodeMissingModalID,
		validation.CodeMissingFormClass,
		validation.CodeMissingLabel,
		validation.CodeMissingAltText,
		validation.CodeRowWithoutContainer,
	}
	if diff := cmp.Diff(want, result.Codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, result.Errors(), 1)
	require.Len(t, result.Warnings(), 5)
	require.Equal(t, []string{"button-variant", "modal-id", "form-control", "alt-text", "row-container"}, validation.RuleNames())
}

func TestValidate_DetectsJSX(t *testing.T) {
	code := `<>
  <label htmlFor="email" className="form-label">Email</label>
  <input type="email" className="form-control" id="email" />
</>`
	result, err := validation.New(nil).Validate(code, "")
	require.NoError(t, err)
	require.Equal(t, markup.JSX, result.Syntax)
	require.True(t, result.Valid)
	require.Empty(t, result.Issues)
	require.Equal(t, []string{"form-input"}, result.Components)
}

func TestValidate_RecognisesComponents(t *testing.T) {
	result, err := validation.New(nil).Validate(`<button class="btn">Go</button>`, markup.HTML)
	require.NoError(t, err)
	require.Equal(t, []string{"button"}, result.Components)
}

func TestValidate_UnsupportedSyntax(t *testing.T) {
	_, err := validation.New(nil).Validate("<div></div>", markup.Syntax("svelte"))
	require.Error(t, err)
	require.False(t, errors.Is(err, errors.ErrParse))
}

// Generated markup never carries an error-severity issue.
func TestValidate_GeneratedSnippetsHaveNoErrors(t *testing.T) {
	gen := generator.New(nil)
	v := validation.New(gen.Registry())

	words := []string{
		"button", "modal", "form", "card", "alert", "badge", "navbar", "table", "image", "grid",
		"container", "dropdown", "spinner", "progress", "breadcrumb", "landing page", "checkbox",
		"select", "textarea", "email", "password", "submit", "delete", "red", "outline", "large",
		"centered", "striped", "dark", "with", "and", "labeled", "Go", "title", "Welcome",
	}

	rapid.Check(t, func(rt *rapid.T) {
		description := strings.Join(rapid.SliceOfN(rapid.SampledFrom(words), 1, 8).Draw(rt, "words"), " ")
		syntax := rapid.SampledFrom(markup.Syntaxes()).Draw(rt, "syntax")

		generated, err := gen.Generate(description, syntax)
		if err != nil {
			require.ErrorIs(rt, err, errors.ErrUnresolvedIntent)
			return
		}
		result, err := v.Validate(generated.Code, syntax)
		require.NoError(rt, err)
		require.True(rt, result.Valid, "issues for %q: %+v\n%s", description, result.Issues, generated.Code)
		require.Empty(rt, result.Errors())
	})
}
