package mcpserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-ux4g/internal/metrics"
	"github.com/goliatone/go-ux4g/pkg/generator"
	"github.com/goliatone/go-ux4g/pkg/orchestrator"
	"github.com/goliatone/go-ux4g/pkg/practices"
	"github.com/goliatone/go-ux4g/pkg/refine"
	"github.com/goliatone/go-ux4g/pkg/validation"
)

func newServer(t *testing.T, opts ...Option) (*Server, *metrics.Collector) {
	t.Helper()
	collector := metrics.NewWithRegistry(prometheus.NewRegistry())
	opts = append([]Option{WithMetrics(collector)}, opts...)
	return New(orchestrator.New(), opts...), collector
}

func call(t *testing.T, s *Server, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	handler, ok := s.handlers[tool]
	require.True(t, ok, "tool %s not registered", tool)

	var request mcp.CallToolRequest
	request.Params.Name = tool
	request.Params.Arguments = args
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func text(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	content, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return content.Text
}

func decode[T any](t *testing.T, result *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, result.IsError, text(t, result))
	var out T
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &out))
	return out
}

func TestTools_Registered(t *testing.T) {
	s, _ := newServer(t)
	want := []string{
		"get_version", "list_components", "use_component", "list_tokens",
		"generate_snippet", "validate_snippet", "refine_snippet", "get_bestpractices",
	}
	if diff := cmp.Diff(want, s.Tools()); diff != "" {
		t.Fatalf("tools mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, s.MCP())
}

func TestGenerateSnippet(t *testing.T) {
	s, _ := newServer(t)

	got := decode[generator.Result](t, call(t, s, "generate_snippet", map[string]any{
		"description": "primary button labeled Submit",
	}))
	require.Equal(t, `<button type="button" class="btn btn-primary">Submit</button>`, got.Code)
	require.Equal(t, []string{"button"}, got.ComponentIDs)

	got = decode[generator.Result](t, call(t, s, "generate_snippet", map[string]any{
		"description": "primary button labeled Submit",
		"syntax":      "react",
	}))
	require.Contains(t, got.Code, `className="btn btn-primary"`)
}

func TestGenerateSnippet_CallerErrors(t *testing.T) {
	s, collector := newServer(t)

	result := call(t, s, "generate_snippet", map[string]any{})
	require.True(t, result.IsError)

	result = call(t, s, "generate_snippet", map[string]any{"description": "button", "syntax": "svelte"})
	require.True(t, result.IsError)
	require.Contains(t, text(t, result), "unknown syntax")

	result = call(t, s, "generate_snippet", map[string]any{"description": "purple unicorn"})
	require.True(t, result.IsError)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &payload))
	require.Equal(t, "UNRESOLVED_INTENT", payload.Code)
	require.Equal(t, "resolution", payload.Class)

	require.Equal(t, 3.0, testutil.ToFloat64(collector.ToolCalls.WithLabelValues("generate_snippet", metrics.OutcomeCallerError)))
}

func TestValidateSnippet(t *testing.T) {
	s, _ := newServer(t)

	got := decode[validation.Result](t, call(t, s, "validate_snippet", map[string]any{
		"code": `<button class="btn">Go</button>`,
	}))
	require.True(t, got.Valid)
	require.Equal(t, []validation.Code{validation.CodeMissingButtonVariant}, got.Codes())

	got = decode[validation.Result](t, call(t, s, "validate_snippet", map[string]any{"code": ""}))
	require.False(t, got.Valid)
	require.Equal(t, []validation.Code{validation.CodeEmptyCode}, got.Codes())

	require.True(t, call(t, s, "validate_snippet", map[string]any{}).IsError)
}

func TestCache(t *testing.T) {
	s, collector := newServer(t, WithCache(time.Minute, time.Minute))
	args := map[string]any{"code": `<div class="row"></div>`, "syntax": "html"}

	first := text(t, call(t, s, "validate_snippet", args))
	second := text(t, call(t, s, "validate_snippet", args))
	require.Equal(t, first, second)
	require.Equal(t, 1.0, testutil.ToFloat64(collector.CacheHits.WithLabelValues("validate_snippet")))

	call(t, s, "generate_snippet", map[string]any{"description": "purple unicorn"})
	call(t, s, "generate_snippet", map[string]any{"description": "purple unicorn"})
	require.Equal(t, 0.0, testutil.ToFloat64(collector.CacheHits.WithLabelValues("generate_snippet")))
}

func TestCache_Disabled(t *testing.T) {
	s, collector := newServer(t, WithCache(0, 0))
	args := map[string]any{"description": "primary button"}
	call(t, s, "generate_snippet", args)
	call(t, s, "generate_snippet", args)
	require.Equal(t, 0.0, testutil.ToFloat64(collector.CacheHits.WithLabelValues("generate_snippet")))
	require.Equal(t, 2.0, testutil.ToFloat64(collector.ToolCalls.WithLabelValues("generate_snippet", metrics.OutcomeOK)))
}

func TestRefineSnippet(t *testing.T) {
	s, _ := newServer(t)

	got := decode[refine.Result](t, call(t, s, "refine_snippet", map[string]any{
		"code":    `<button type="button" class="btn btn-primary">Submit</button>`,
		"request": "make it outline danger",
	}))
	require.Equal(t, `<button type="button" class="btn btn-outline-danger">Submit</button>`, got.Code)
	require.Equal(t, refine.OpSwapVariant, got.Operation)

	result := call(t, s, "refine_snippet", map[string]any{
		"code":    `<button type="button" class="btn btn-primary">Submit</button>`,
		"request": "rewrite everything as a carousel",
	})
	require.True(t, result.IsError)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &payload))
	require.Equal(t, "OPERATION_UNSUPPORTED", payload.Code)
	require.NotEmpty(t, payload.Hints)

	require.True(t, call(t, s, "refine_snippet", map[string]any{"code": "<p></p>"}).IsError)
}

func TestUseComponent(t *testing.T) {
	s, _ := newServer(t)

	got := decode[orchestrator.ComponentUsage](t, call(t, s, "use_component", map[string]any{
		"id":      "button",
		"variant": "success",
	}))
	require.Equal(t, "button", got.Component.ID)
	require.Equal(t, `<button type="button" class="btn btn-success">Button</button>`, got.Code)

	result := call(t, s, "use_component", map[string]any{"id": "buton"})
	require.True(t, result.IsError)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal([]byte(text(t, result)), &payload))
	require.Equal(t, "UNKNOWN_COMPONENT_ID", payload.Code)
	require.Contains(t, payload.Suggestions, "button")
}

func TestListComponents(t *testing.T) {
	s, _ := newServer(t)

	all := decode[componentList](t, call(t, s, "list_components", map[string]any{}))
	require.Equal(t, len(all.Components), all.Count)
	require.NotZero(t, all.Count)

	withJS := decode[componentList](t, call(t, s, "list_components", map[string]any{"requires_js": true}))
	require.Less(t, withJS.Count, all.Count)
	for _, def := range withJS.Components {
		assert.True(t, def.RequiresJS, def.ID)
	}

	require.True(t, call(t, s, "list_components", map[string]any{"requires_js": "yes"}).IsError)
}

func TestListTokensAndVersion(t *testing.T) {
	s, _ := newServer(t)

	tokens := decode[orchestrator.TokenSet](t, call(t, s, "list_tokens", map[string]any{"type": "color", "variant": "dark"}))
	require.Equal(t, "dark", tokens.Variant)
	require.Equal(t, "#8B6CF7", tokens.CSSVars["--ux4g-primary"])

	require.True(t, call(t, s, "list_tokens", map[string]any{"variant": "sepia"}).IsError)

	info := decode[orchestrator.VersionInfo](t, call(t, s, "get_version", nil))
	require.Equal(t, "2.0.8", info.Version)
	require.Contains(t, info.Assets, "ux4g.bundle.min.js")
}

func TestBestPractices(t *testing.T) {
	s, _ := newServer(t)

	got := decode[practices.Result](t, call(t, s, "get_bestpractices", map[string]any{"query": "modal"}))
	require.Equal(t, "modal", got.Query)
	require.Equal(t, "modal-usage", got.Practices[0].ID)

	got = decode[practices.Result](t, call(t, s, "get_bestpractices", map[string]any{"limit": float64(2)}))
	require.Equal(t, 2, got.ResultCount)

	got = decode[practices.Result](t, call(t, s, "get_bestpractices", nil))
	require.Equal(t, defaultPracticeLimit, got.ResultCount)
}

func TestRequestID(t *testing.T) {
	s, _ := newServer(t)
	var seen []string
	handler := s.instrument("probe", func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		seen = append(seen, RequestID(ctx))
		return mcp.NewToolResultText("ok"), nil
	})
	for range 2 {
		_, err := handler(context.Background(), mcp.CallToolRequest{})
		require.NoError(t, err)
	}
	require.Len(t, seen, 2)
	require.NotEmpty(t, seen[0])
	require.NotEqual(t, seen[0], seen[1])
	require.Empty(t, RequestID(context.Background()))
}
