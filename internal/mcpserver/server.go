// Package mcpserver exposes the orchestrator operations as Model Context
// Protocol tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/goliatone/go-ux4g/internal/metrics"
	"github.com/goliatone/go-ux4g/pkg/errors"
	"github.com/goliatone/go-ux4g/pkg/orchestrator"
)

// ServerName is advertised to MCP clients.
const ServerName = "ux4g"

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger for per-call traces.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records tool calls on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(s *Server) {
		s.metrics = collector
	}
}

// WithCache memoises generate and validate results for ttl. A non-positive
// ttl disables the cache.
func WithCache(ttl, cleanup time.Duration) Option {
	return func(s *Server) {
		if ttl <= 0 {
			s.cache = nil
			return
		}
		s.cache = gocache.New(ttl, cleanup)
	}
}

// WithServerVersion sets the version advertised during initialisation.
func WithServerVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// Server binds the tool surface to one orchestrator.
type Server struct {
	orch     *orchestrator.Orchestrator
	mcp      *server.MCPServer
	handlers map[string]server.ToolHandlerFunc
	tools    []string
	cache    *gocache.Cache
	metrics  *metrics.Collector
	logger   *zap.Logger
	version  string
}

// New builds the server and registers every tool.
func New(orch *orchestrator.Orchestrator, opts ...Option) *Server {
	s := &Server{
		orch:     orch,
		handlers: make(map[string]server.ToolHandlerFunc),
		logger:   zap.NewNop(),
		version:  "dev",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.mcp = server.NewMCPServer(
		ServerName,
		s.version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s
}

const instructions = "Generate, validate and refine UX4G design system markup. " +
	"Call list_components or use_component before writing markup by hand, " +
	"and validate_snippet before returning markup to the user."

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Tools lists the registered tool names in registration order.
func (s *Server) Tools() []string {
	return append([]string(nil), s.tools...)
}

// ServeStdio serves the tools on stdin and stdout until ctx is done or the
// input closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve serves the tools over in and out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger.Named("stdio")))
	s.logger.Info("mcp server listening on stdio", zap.Strings("tools", s.tools))
	return stdio.Listen(ctx, in, out)
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	wrapped := s.instrument(tool.Name, handler)
	s.handlers[tool.Name] = wrapped
	s.tools = append(s.tools, tool.Name)
	s.mcp.AddTool(tool, wrapped)
}

type requestIDKey struct{}

// RequestID returns the id instrument assigned to the current call.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// instrument tags each call with a request id, logs it and records metrics.
func (s *Server) instrument(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := uuid.NewString()
		ctx = context.WithValue(ctx, requestIDKey{}, id)
		started := time.Now()

		result, err := handler(ctx, request)

		outcome := metrics.OutcomeOK
		switch {
		case err != nil:
			outcome = metrics.OutcomeError
		case result != nil && result.IsError:
			outcome = metrics.OutcomeCallerError
		}
		elapsed := time.Since(started)
		s.metrics.Observe(name, outcome, elapsed)
		s.logger.Debug("tool call",
			zap.String("tool", name),
			zap.String("request_id", id),
			zap.String("outcome", outcome),
			zap.Duration("elapsed", elapsed),
		)
		if err != nil {
			s.logger.Error("tool call failed", zap.String("tool", name), zap.String("request_id", id), zap.Error(err))
		}
		return result, err
	}
}

// ErrorPayload is the body of a tool error result.
type ErrorPayload struct {
	Code        string   `json:"code"`
	Class       string   `json:"class"`
	Message     string   `json:"message"`
	Hints       []string `json:"hints,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// errorResult reports err to the caller as a tool error. Every error in the
// taxonomy is a caller mistake, so none of them surface as protocol errors.
func errorResult(err error) *mcp.CallToolResult {
	payload := ErrorPayload{
		Code:    errors.Code(err),
		Class:   errors.Class(err),
		Message: err.Error(),
		Hints:   errors.GetAllHints(err),
	}
	var unknown *errors.UnknownComponentError
	var unresolved *errors.UnresolvedIntentError
	switch {
	case errors.As(err, &unknown):
		payload.Suggestions = unknown.Suggestions
	case errors.As(err, &unresolved):
		payload.Suggestions = unresolved.Candidates
	}
	data, marshalErr := json.MarshalIndent(payload, "", "  ")
	if marshalErr != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError(string(data))
}

// callerError reports a bad argument.
func callerError(format string, args ...any) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf(format, args...))
}

func jsonResult(value any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("mcpserver: encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// cached returns the memoised text for key or computes, stores and returns
// it. Tool errors are never stored.
func (s *Server) cached(tool, key string, compute func() (*mcp.CallToolResult, error)) (*mcp.CallToolResult, error) {
	if s.cache == nil {
		return compute()
	}
	key = tool + "\x00" + key
	if text, ok := s.cache.Get(key); ok {
		s.metrics.CacheHit(tool)
		return mcp.NewToolResultText(text.(string)), nil
	}
	result, err := compute()
	if err != nil || result == nil || result.IsError {
		return result, err
	}
	if len(result.Content) == 1 {
		if text, ok := mcp.AsTextContent(result.Content[0]); ok {
			s.cache.SetDefault(key, text.Text)
		}
	}
	return result, nil
}
