// Package tools provides the MCP tool adapters: reachability probing,
// TCP port checking, HTTP GET fetching, and shell command execution.
//
// Every adapter is stateless and independently callable. Operational
// failures (timeouts, unreachable hosts, DNS errors) are reported as
// descriptive result strings, never as Go errors: no error propagates out
// of a tool invocation.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool provides both the MCP definition and the handler for one tool.
type Tool interface {
	// Definition returns the tool's MCP schema.
	Definition() mcp.Tool

	// Handler returns the function that executes the tool.
	Handler() server.ToolHandlerFunc
}
