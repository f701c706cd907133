package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/markup"
	"github.com/goliatone/go-ux4g/pkg/orchestrator"
)

const defaultPracticeLimit = 5

func syntaxOption(description string) mcp.ToolOption {
	return mcp.WithString("syntax",
		mcp.Description(description),
		mcp.Enum("html", "jsx", "react"),
	)
}

func (s *Server) registerTools() {
	s.addTool(mcp.NewTool("get_version",
		mcp.WithDescription("Return the UX4G catalog name and version with the CDN URLs of its CSS and JavaScript assets"),
	), s.handleVersion)

	s.addTool(mcp.NewTool("list_components",
		mcp.WithDescription("List UX4G components, optionally filtered by category, tag, JavaScript requirement or kind"),
		mcp.WithString("category", mcp.Description("Category such as forms, actions, overlays, layout")),
		mcp.WithString("tag", mcp.Description("Tag or keyword the component carries")),
		mcp.WithBoolean("requires_js", mcp.Description("Only components that do (true) or do not (false) need the JavaScript bundle")),
		mcp.WithString("kind", mcp.Description("component or layout"), mcp.Enum("component", "layout")),
	), s.handleListComponents)

	s.addTool(mcp.NewTool("use_component",
		mcp.WithDescription("Return one component definition with a ready-to-use snippet"),
		mcp.WithString("id", mcp.Required(), mcp.Description("Component id from list_components")),
		mcp.WithString("variant", mcp.Description("Variant name; defaults to the component's default variant")),
		syntaxOption("Output syntax (default html)"),
	), s.handleUseComponent)

	s.addTool(mcp.NewTool("list_tokens",
		mcp.WithDescription("List UX4G design tokens with their CSS variables"),
		mcp.WithString("type",
			mcp.Description("Token type to list (default all)"),
			mcp.Enum("all", "color", "spacing", "typography", "radius", "breakpoint"),
		),
		mcp.WithString("variant", mcp.Description("Theme variant; dark selects the dark palette")),
	), s.handleListTokens)

	s.addTool(mcp.NewTool("generate_snippet",
		mcp.WithDescription("Generate UX4G markup from a short description such as \"primary button labeled Submit\""),
		mcp.WithString("description", mcp.Required(), mcp.Description("What to build")),
		syntaxOption("Output syntax (default from the server configuration)"),
	), s.handleGenerate)

	s.addTool(mcp.NewTool("validate_snippet",
		mcp.WithDescription("Check markup against the UX4G conventions and report issues with fix hints"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Markup to check")),
		syntaxOption("Syntax of the code; detected when omitted"),
	), s.handleValidate)

	s.addTool(mcp.NewTool("refine_snippet",
		mcp.WithDescription("Apply one bounded change to UX4G markup, such as swapping a variant, replacing a label or adding a class"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Markup to change")),
		mcp.WithString("request", mcp.Required(), mcp.Description("The change, for example: make the button outline danger")),
		syntaxOption("Output syntax; keeps the input syntax when omitted"),
	), s.handleRefine)

	s.addTool(mcp.NewTool("get_bestpractices",
		mcp.WithDescription("Return UX4G handbook guidance matching a query"),
		mcp.WithString("query", mcp.Description("Topic or keywords, for example: form labels")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of practices (default 5)")),
	), s.handleBestPractices)
}

// syntaxArg reads the optional syntax argument. Empty stays empty so each
// operation applies its own default.
func syntaxArg(request mcp.CallToolRequest) (markup.Syntax, error) {
	value := strings.TrimSpace(request.GetString("syntax", ""))
	if value == "" {
		return "", nil
	}
	return markup.ParseSyntax(value)
}

func (s *Server) handleVersion(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.orch.Version(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(info)
}

type componentList struct {
	Count      int                            `json:"count"`
	Components []*catalog.ComponentDefinition `json:"components"`
}

func (s *Server) handleListComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := catalog.Filter{
		Category: request.GetString("category", ""),
		Tag:      request.GetString("tag", ""),
		Kind:     request.GetString("kind", ""),
	}
	if raw, ok := request.GetArguments()["requires_js"]; ok && raw != nil {
		requiresJS, isBool := raw.(bool)
		if !isBool {
			return callerError("requires_js must be a boolean, got %v", raw), nil
		}
		filter.RequiresJS = &requiresJS
	}

	defs, err := s.orch.ListComponents(ctx, filter)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(componentList{Count: len(defs), Components: defs})
}

func (s *Server) handleUseComponent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	syntax, err := syntaxArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	usage, err := s.orch.UseComponent(ctx, id, request.GetString("variant", ""), syntax)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(usage)
}

func (s *Server) handleListTokens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	set, err := s.orch.Tokens(ctx, request.GetString("type", ""), request.GetString("variant", ""))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(set)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	description, err := request.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	syntax, err := syntaxArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.cached("generate_snippet", string(syntax)+"\x00"+description, func() (*mcp.CallToolResult, error) {
		result, err := s.orch.Generate(ctx, orchestrator.GenerateRequest{Description: description, Syntax: syntax})
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(result)
	})
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// an empty code is valid input and yields an EMPTY_CODE issue
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	syntax, err := syntaxArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.cached("validate_snippet", string(syntax)+"\x00"+code, func() (*mcp.CallToolResult, error) {
		result, err := s.orch.Validate(ctx, orchestrator.ValidateRequest{Code: code, Syntax: syntax})
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(result)
	})
}

func (s *Server) handleRefine(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	change, err := request.RequireString("request")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	syntax, err := syntaxArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := s.orch.Refine(ctx, orchestrator.RefineRequest{Code: code, Request: change, Syntax: syntax})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result)
}

func (s *Server) handleBestPractices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.orch.Practices(ctx, request.GetString("query", ""), request.GetInt("limit", defaultPracticeLimit))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(result)
}
