package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	portMin = 1
	portMax = 65535

	// portProbeTimeout bounds the single connection attempt.
	portProbeTimeout = 2 * time.Second
)

// PortCheckTool checks whether a TCP port is open on a target host with a
// single short-timeout connection attempt.
type PortCheckTool struct {
	logger *slog.Logger
}

// NewPortCheckTool creates a new port check tool.
func NewPortCheckTool(logger *slog.Logger) *PortCheckTool {
	return &PortCheckTool{logger: logger}
}

func (p *PortCheckTool) Definition() mcp.Tool {
	return mcp.NewTool("check_port_status",
		mcp.WithDescription("Checks if a specific TCP port is open on a target host."),
		mcp.WithString("target_host",
			mcp.Required(),
			mcp.Description("IP address or hostname."),
		),
		mcp.WithNumber("port",
			mcp.Required(),
			mcp.Description("TCP port number (1-65535)."),
		),
	)
}

func (p *PortCheckTool) Handler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		host, err := req.RequireString("target_host")
		if err != nil {
			return mcp.NewToolResultError("Missing or invalid 'target_host' argument"), nil
		}
		port, err := req.RequireInt("port")
		if err != nil {
			raw := req.GetArguments()["port"]
			return mcp.NewToolResultError(fmt.Sprintf("Error: Port '%v' must be an integer.", raw)), nil
		}
		if port < portMin || port > portMax {
			// Rejected before any connection attempt.
			return mcp.NewToolResultError(fmt.Sprintf("Error: Invalid port: %d.", port)), nil
		}

		p.logger.Info("port_check_requested", "target_host", host, "port", port)

		address := net.JoinHostPort(host, strconv.Itoa(port))
		conn, dialErr := net.DialTimeout("tcp", address, portProbeTimeout)
		if dialErr == nil {
			conn.Close()
			return mcp.NewToolResultText(fmt.Sprintf("Port %d on '%s' is open.", port, host)), nil
		}

		return mcp.NewToolResultText(classifyDialError(host, port, dialErr)), nil
	}
}

// classifyDialError maps a dial failure to one of the distinct outcome
// messages: unresolvable, filtered (timeout), or closed/filtered.
func classifyDialError(host string, port int, err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Sprintf("Error: Cannot resolve hostname '%s'.", host)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Sprintf("Port %d on '%s' filtered (timeout).", port, host)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Err != nil {
		return fmt.Sprintf("Port %d on '%s' is closed/filtered (%v).", port, host, opErr.Err)
	}

	return fmt.Sprintf("Port check error for %d on '%s': %v", port, host, err)
}
