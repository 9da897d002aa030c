package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/randomizedcoder/go-mcp-nettools/internal/metrics"
)

// Recorder receives one observation per completed tool invocation.
// *stats.Tracker satisfies this.
type Recorder interface {
	Record(tool string, duration time.Duration, isError bool)
}

// Registry is an explicit mapping from tool name to invocation function,
// constructed once at startup. There is no hidden global registration.
type Registry struct {
	logger   *slog.Logger
	recorder Recorder
	tools    []Tool
}

// NewRegistry creates an empty registry. recorder may be nil.
func NewRegistry(logger *slog.Logger, recorder Recorder) *Registry {
	return &Registry{
		logger:   logger,
		recorder: recorder,
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool Tool) {
	r.tools = append(r.tools, tool)
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for _, tool := range r.tools {
		names = append(names, tool.Definition().Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Handler returns the instrumented handler for the named tool, or false
// if no such tool is registered.
func (r *Registry) Handler(name string) (server.ToolHandlerFunc, bool) {
	for _, tool := range r.tools {
		if def := tool.Definition(); def.Name == name {
			return r.instrument(def.Name, tool.Handler()), true
		}
	}
	return nil, false
}

// Install adds every registered tool to the MCP server, wrapping each
// handler with logging, metrics, and stats instrumentation.
func (r *Registry) Install(s *server.MCPServer) {
	for _, tool := range r.tools {
		def := tool.Definition()
		s.AddTool(def, r.instrument(def.Name, tool.Handler()))
	}
}

// instrument wraps a handler so that every invocation is logged, timed,
// and counted, and so that a panic inside a tool is converted into an
// error result at the boundary instead of escaping.
func (r *Registry) instrument(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		start := time.Now()

		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("tool_panic", "tool", name, "panic", rec)
				result = mcp.NewToolResultError(fmt.Sprintf("An unexpected server-side error occurred: %v", rec))
				err = nil
			}

			duration := time.Since(start)
			isError := err != nil || (result != nil && result.IsError)

			metrics.ObserveToolInvocation(name, duration, isError)
			if r.recorder != nil {
				r.recorder.Record(name, duration, isError)
			}

			r.logger.Info("tool_completed",
				"tool", name,
				"duration_ms", duration.Milliseconds(),
				"is_error", isError,
			)
		}()

		r.logger.Info("tool_invoked", "tool", name)
		return handler(ctx, req)
	}
}
