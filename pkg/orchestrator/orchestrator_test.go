package orchestrator

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/intent"
	"github.com/goliatone/go-ux4g/pkg/markup"
	"github.com/goliatone/go-ux4g/pkg/practices"
	"github.com/goliatone/go-ux4g/pkg/refine"
	"github.com/goliatone/go-ux4g/pkg/validation"
)

func TestOrchestrator_Generate(t *testing.T) {
	orch := New()

	result, err := orch.Generate(context.Background(), GenerateRequest{Description: "primary button labeled Submit"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := `<button type="button" class="btn btn-primary">Submit</button>`
	if diff := cmp.Diff(want, result.Code); diff != "" {
		t.Fatalf("code mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"button"}, result.ComponentIDs)
	require.Equal(t, markup.HTML, result.Syntax)
}

func TestOrchestrator_DefaultSyntax(t *testing.T) {
	orch := New(WithDefaultSyntax(markup.JSX))

	result, err := orch.Generate(context.Background(), GenerateRequest{Description: "primary button labeled Submit"})
	require.NoError(t, err)
	require.Equal(t, markup.JSX, result.Syntax)
	require.Contains(t, result.Code, `className="btn btn-primary"`)

	result, err = orch.Generate(context.Background(), GenerateRequest{Description: "primary button", Syntax: markup.HTML})
	require.NoError(t, err)
	require.Contains(t, result.Code, `class="btn btn-primary"`)
}

func TestOrchestrator_Render(t *testing.T) {
	orch := New()

	result, err := orch.Render(context.Background(), []intent.Intent{{
		ComponentID: "button",
		Variant:     "success",
		Modifiers:   []string{"large"},
		Slots:       map[string]string{"label": "Send"},
	}}, "")
	require.NoError(t, err)
	require.Equal(t, `<button type="button" class="btn btn-success btn-lg">Send</button>`, result.Code)
}

func TestOrchestrator_GenerateThenValidate(t *testing.T) {
	orch := New()
	ctx := context.Background()

	generated, err := orch.Generate(ctx, GenerateRequest{Description: "modal with title Confirm and Save button"})
	require.NoError(t, err)

	report, err := orch.Validate(ctx, ValidateRequest{Code: generated.Code})
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors())
}

func TestOrchestrator_Validate(t *testing.T) {
	orch := New()

	report, err := orch.Validate(context.Background(), ValidateRequest{Code: `<button class="btn">Go</button>`, Syntax: markup.HTML})
	require.NoError(t, err)
	require.True(t, report.Valid)
	require.Equal(t, []validation.Code{validation.CodeMissingButtonVariant}, report.Codes())
}

func TestOrchestrator_Refine(t *testing.T) {
	orch := New()

	result, err := orch.Refine(context.Background(), RefineRequest{
		Code:    `<button type="button" class="btn btn-primary">Submit</button>`,
		Request: "make it danger",
	})
	require.NoError(t, err)
	require.Equal(t, `<button type="button" class="btn btn-danger">Submit</button>`, result.Code)
	require.Equal(t, refine.OpSwapVariant, result.Operation)
}

func TestOrchestrator_RefineMatchers(t *testing.T) {
	matchers := refine.NewRegistry()
	matchers.Register("shout", 500, func(ctx *refine.Context) (refine.Edit, bool) {
		if !ctx.Request.Has("shout") {
			return refine.Edit{}, false
		}
		return refine.Edit{Summary: "shouted"}, true
	})
	orch := New(WithRefineMatchers(matchers))

	result, err := orch.Refine(context.Background(), RefineRequest{
		Code:    `<button type="button" class="btn btn-primary">Submit</button>`,
		Request: "shout",
	})
	require.NoError(t, err)
	require.Equal(t, "shout", result.Operation)
	require.Equal(t, "shouted", result.Summary)
}

func TestOrchestrator_Lookup(t *testing.T) {
	orch := New()
	ctx := context.Background()

	def, err := orch.GetComponent(ctx, "modal")
	require.NoError(t, err)
	require.Equal(t, "modal", def.ID)

	_, err = orch.GetComponent(ctx, "buton")
	var unknown *errors.UnknownComponentError
	require.ErrorAs(t, err, &unknown)
	require.Contains(t, unknown.Suggestions, "button")

	requiresJS := true
	defs, err := orch.ListComponents(ctx, catalog.Filter{RequiresJS: &requiresJS})
	require.NoError(t, err)
	require.NotEmpty(t, defs)
	for _, def := range defs {
		assert.True(t, def.RequiresJS, def.ID)
	}
}

func TestOrchestrator_UseComponent(t *testing.T) {
	orch := New()
	ctx := context.Background()

	usage, err := orch.UseComponent(ctx, "button", "outline-danger", markup.JSX)
	require.NoError(t, err)
	require.Equal(t, "button", usage.Component.ID)
	require.Equal(t, `<button type="button" className="btn btn-outline-danger">Button</button>`, usage.Code)
	require.Equal(t, []string{"https://cdn.jsdelivr.net/npm/ux4g@2.0.8/dist/css/ux4g.min.css"}, usage.Dependencies)

	usage, err = orch.UseComponent(ctx, "button", "", "")
	require.NoError(t, err)
	require.Equal(t, `<button type="button" class="btn btn-primary">Button</button>`, usage.Code)

	_, err = orch.UseComponent(ctx, "button", "sparkly", markup.HTML)
	require.Error(t, err)
	require.NotEmpty(t, errors.GetAllHints(err))
}

func TestOrchestrator_Tokens(t *testing.T) {
	ctx := context.Background()

	base, err := New().Tokens(ctx, "color", "")
	require.NoError(t, err)
	require.Empty(t, base.Variant)
	require.NotEmpty(t, base.Tokens)
	require.Equal(t, "#613AF5", base.Tokens[0].Value)
	require.Equal(t, "#613AF5", base.CSSVars["--ux4g-primary"])
	for _, token := range base.Tokens {
		assert.Equal(t, "color", token.Type)
	}

	dark, err := New(WithThemeVariant(catalog.DarkVariant)).Tokens(ctx, "color", "")
	require.NoError(t, err)
	require.Equal(t, catalog.DarkVariant, dark.Variant)
	require.Equal(t, "#8B6CF7", dark.Tokens[0].Value)
	require.Equal(t, "#8B6CF7", dark.CSSVars["--ux4g-primary"])

	_, err = New().Tokens(ctx, "", "sepia")
	require.Error(t, err)
}

func TestOrchestrator_PracticesAndVersion(t *testing.T) {
	kb := &practices.KnowledgeBase{
		Source:    practices.Source{Title: "Local", URL: "u"},
		Practices: []practices.Practice{{ID: "one", Title: "One", Guidance: "Do one thing."}},
	}
	orch := New(WithPractices(kb))
	ctx := context.Background()

	result, err := orch.Practices(ctx, "", 5)
	require.NoError(t, err)
	require.Equal(t, "Local", result.Source.Title)
	require.Equal(t, 1, result.ResultCount)

	info, err := orch.Version(ctx)
	require.NoError(t, err)
	want := VersionInfo{
		Name:    "ux4g",
		Title:   "UX4G Design System",
		Version: "2.0.8",
		Assets: map[string]string{
			"ux4g.min.css":       "https://cdn.jsdelivr.net/npm/ux4g@2.0.8/dist/css/ux4g.min.css",
			"ux4g-grid.css":      "https://cdn.jsdelivr.net/npm/ux4g@2.0.8/dist/css/ux4g-grid.css",
			"ux4g.bundle.min.js": "https://cdn.jsdelivr.net/npm/ux4g@2.0.8/dist/js/ux4g.bundle.min.js",
		},
		Components: len(catalog.Default().IDs()),
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Fatalf("version mismatch (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_InitialisationErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"bad syntax", []Option{WithDefaultSyntax("svelte")}, "unsupported default syntax"},
		{"bad catalog", []Option{WithCatalogFS(fstest.MapFS{"catalog.yaml": {Data: []byte("catalog: [")}})}, "orchestrator: load catalog"},
		{"bad variant", []Option{WithThemeVariant("sepia")}, "orchestrator: theme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orch := New(tt.opts...)
			_, err := orch.Generate(ctx, GenerateRequest{Description: "primary button"})
			require.ErrorContains(t, err, tt.want)
			_, err = orch.Version(ctx)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestOrchestrator_Context(t *testing.T) {
	orch := New()

	//nolint:staticcheck // a nil context is the case under test
	_, err := orch.Validate(nil, ValidateRequest{Code: "<p></p>"})
	require.ErrorContains(t, err, "context is required")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = orch.Generate(ctx, GenerateRequest{Description: "primary button"})
	require.ErrorIs(t, err, context.Canceled)
}
