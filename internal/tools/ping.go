package tools

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// pingMinCount/pingMaxCount clamp the echo request count; out-of-range
	// values fall back to pingDefaultCount rather than failing.
	pingMinCount     = 1
	pingMaxCount     = 5
	pingDefaultCount = 2

	// pingPacketTimeoutSecs is passed to ping -W (per-request wait).
	pingPacketTimeoutSecs = 3

	// pingOverallTimeout bounds the whole ping invocation.
	pingOverallTimeout = 15 * time.Second
)

// PingTool checks host reachability using the system ping command.
// Assumes a Linux-style ping with -c and -W flags.
type PingTool struct {
	logger *slog.Logger
}

// NewPingTool creates a new ping tool.
func NewPingTool(logger *slog.Logger) *PingTool {
	return &PingTool{logger: logger}
}

func (p *PingTool) Definition() mcp.Tool {
	return mcp.NewTool("ping_target",
		mcp.WithDescription("Pings a target host to check for reachability using the system's ping command."),
		mcp.WithString("target_host",
			mcp.Required(),
			mcp.Description("The IP address or hostname to ping."),
		),
		mcp.WithNumber("count",
			mcp.Description("The number of ping packets to send (default is 2, max is 5)."),
			mcp.DefaultNumber(pingDefaultCount),
		),
	)
}

func (p *PingTool) Handler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		host, err := req.RequireString("target_host")
		if err != nil {
			return mcp.NewToolResultError("Missing or invalid 'target_host' argument"), nil
		}
		count := clampPingCount(req.GetInt("count", pingDefaultCount))

		p.logger.Info("ping_requested", "target_host", host, "count", count)

		if _, err := exec.LookPath("ping"); err != nil {
			return mcp.NewToolResultText("Error: 'ping' command not found on server."), nil
		}

		ctx, cancel := context.WithTimeout(ctx, pingOverallTimeout)
		defer cancel()

		cmd := exec.CommandContext(ctx, "ping",
			"-c", strconv.Itoa(count),
			"-W", strconv.Itoa(pingPacketTimeoutSecs),
			host,
		)

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		runErr := cmd.Run()
		if ctx.Err() == context.DeadlineExceeded {
			return mcp.NewToolResultText(fmt.Sprintf("Error: Ping for '%s' timed out.", host)), nil
		}
		if runErr != nil {
			if _, ok := runErr.(*exec.ExitError); !ok {
				return mcp.NewToolResultText(fmt.Sprintf("Ping error for '%s': %v", host, runErr)), nil
			}
			// Non-zero exit (unreachable host etc.) still produces a
			// report: the exit code line carries the status.
		}

		lines := []string{fmt.Sprintf("--- Ping results for '%s' (Count: %d) ---", host, count)}
		if out := strings.TrimSpace(stdout.String()); out != "" {
			lines = append(lines, "Stdout:", out)
		}
		if errOut := strings.TrimSpace(stderr.String()); errOut != "" {
			lines = append(lines, "Stderr:", errOut)
		}
		lines = append(lines, fmt.Sprintf("Ping command exit code: %d", cmd.ProcessState.ExitCode()))

		return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
	}
}

// clampPingCount forces the count into [pingMinCount, pingMaxCount],
// substituting the default for anything out of range.
func clampPingCount(count int) int {
	if count < pingMinCount || count > pingMaxCount {
		return pingDefaultCount
	}
	return count
}
