package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	// httpFetchTimeout bounds the whole GET including redirects.
	httpFetchTimeout = 10 * time.Second

	// snippetCap is the maximum number of content bytes reported for
	// textual responses.
	snippetCap = 500

	httpUserAgent = "MCP-BasicTools-Client/1.0"
)

// HTTPGetTool performs a single bounded GET and summarizes the response:
// status, content type, and a truncated snippet for textual content.
type HTTPGetTool struct {
	logger *slog.Logger
	client *http.Client
}

// NewHTTPGetTool creates a new HTTP GET tool. The default redirect policy
// applies, so redirect loops surface as descriptive errors after 10 hops.
func NewHTTPGetTool(logger *slog.Logger) *HTTPGetTool {
	return &HTTPGetTool{
		logger: logger,
		client: &http.Client{Timeout: httpFetchTimeout},
	}
}

func (h *HTTPGetTool) Definition() mcp.Tool {
	return mcp.NewTool("simple_http_get",
		mcp.WithDescription("Performs HTTP GET for a URL, returns status, content type, and a content snippet."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("URL for GET request (must start http:// or https://)."),
		),
	)
}

func (h *HTTPGetTool) Handler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		target, err := req.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("Missing or invalid 'url' argument"), nil
		}
		if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
			// Rejected before any network call.
			return mcp.NewToolResultError("Error: Invalid URL. Must start with http:// or https://"), nil
		}

		h.logger.Info("http_get_requested", "url", target)

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return mcp.NewToolResultText(fmt.Sprintf("HTTP GET error for '%s': %v", target, err)), nil
		}
		httpReq.Header.Set("User-Agent", httpUserAgent)

		resp, err := h.client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultText(classifyFetchError(target, err)), nil
		}
		defer resp.Body.Close()

		contentType := resp.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "N/A"
		}

		snippet := readSnippet(resp.Body, contentType)

		output := fmt.Sprintf(
			"--- HTTP GET Response from %s ---\nStatus: %s\nContent-Type: %s\nContent Snippet (first %d chars):\n%s",
			target, resp.Status, contentType, snippetCap, snippet,
		)
		return mcp.NewToolResultText(output), nil
	}
}

// readSnippet reads up to snippetCap characters of a textual body,
// appending a truncation marker when more remained. The cap is in runes,
// not bytes, so a multibyte body is never cut mid-character. Non-textual
// content is replaced by a binary marker without being read.
func readSnippet(body io.Reader, contentType string) string {
	lower := strings.ToLower(contentType)
	if !strings.Contains(lower, "text") && !strings.Contains(lower, "json") {
		return "[Binary content]"
	}

	raw, err := io.ReadAll(io.LimitReader(body, snippetCap*utf8.UTFMax+1))
	if err != nil {
		return fmt.Sprintf("[Error reading body: %v]", err)
	}
	runes := []rune(string(raw))
	if len(runes) > snippetCap {
		return string(runes[:snippetCap]) + "..."
	}
	return string(raw)
}

// classifyFetchError maps a request failure to the descriptive message
// taxonomy: timed out, could not connect, or a generic GET error.
func classifyFetchError(target string, err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return fmt.Sprintf("Error: HTTP GET to '%s' timed out.", target)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Sprintf("Error: Could not connect to '%s'.", target)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Sprintf("Error: Could not connect to '%s'.", target)
	}

	return fmt.Sprintf("HTTP GET error for '%s': %v", target, err)
}
