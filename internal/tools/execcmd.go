package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/randomizedcoder/go-mcp-nettools/internal/runner"
)

// ExecTool executes an arbitrary shell command through the process runner
// and returns the Outcome serialized as JSON. Unlike the other adapters,
// its result is a structured record with exactly the keys stdout, stderr,
// and returncode; callers parse it rather than pattern-matching free text.
type ExecTool struct {
	runner *runner.Runner
	logger *slog.Logger
}

// NewExecTool creates a new command execution tool.
func NewExecTool(r *runner.Runner, logger *slog.Logger) *ExecTool {
	return &ExecTool{runner: r, logger: logger}
}

func (e *ExecTool) Definition() mcp.Tool {
	return mcp.NewTool("execute_bash_command",
		mcp.WithDescription("Executes a given bash command string on the server. "+
			"Returns a JSON string with 'stdout', 'stderr', and 'returncode'. "+
			"WARNING: This tool can execute arbitrary commands; unrestricted command "+
			"execution is its stated purpose."),
		mcp.WithString("command_string",
			mcp.Required(),
			mcp.Description("The bash command string to execute."),
		),
	)
}

func (e *ExecTool) Handler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		command, err := req.RequireString("command_string")
		if err != nil {
			return mcp.NewToolResultError("Missing or invalid 'command_string' argument"), nil
		}

		e.logger.Info("command_requested", "command", truncateForLog(command, 100))

		outcome := e.runner.Run(ctx, command)

		raw, err := json.Marshal(outcome)
		if err != nil {
			// Outcome holds only strings and an int, so this is
			// unreachable in practice; converted to a fault anyway.
			return mcp.NewToolResultError(fmt.Sprintf("An unexpected server-side error occurred: %v", err)), nil
		}

		e.logger.Info("command_completed",
			"returncode", outcome.ExitCode,
			"stdout_len", len(outcome.Stdout),
			"stderr_len", len(outcome.Stderr),
		)
		return mcp.NewToolResultText(string(raw)), nil
	}
}

// truncateForLog caps a command string for log lines.
func truncateForLog(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
