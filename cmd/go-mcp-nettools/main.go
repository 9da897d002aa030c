// Package main provides the go-mcp-nettools CLI entry point.
//
// go-mcp-nettools serves basic network diagnostics (ping, port probe,
// HTTP GET) and shell command execution as MCP tools, over stdio or
// streamable HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mark3labs/mcp-go/server"

	"github.com/randomizedcoder/go-mcp-nettools/internal/config"
	"github.com/randomizedcoder/go-mcp-nettools/internal/logging"
	"github.com/randomizedcoder/go-mcp-nettools/internal/metrics"
	"github.com/randomizedcoder/go-mcp-nettools/internal/preflight"
	"github.com/randomizedcoder/go-mcp-nettools/internal/runner"
	"github.com/randomizedcoder/go-mcp-nettools/internal/stats"
	"github.com/randomizedcoder/go-mcp-nettools/internal/tools"
	"github.com/randomizedcoder/go-mcp-nettools/internal/tui"
)

const serverName = "BasicToolsServer"

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/go-mcp-nettools
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("go-mcp-nettools %s\n", version)
			return 0
		}
	}

	// Parse command-line flags
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	// Initialize logger. Logs always go to stderr: under the stdio
	// transport, stdout carries the protocol stream. When the TUI is
	// enabled, suppress logs entirely to keep the dashboard readable.
	var logger *slog.Logger
	if cfg.TUIEnabled {
		logger = logging.NewLoggerWithWriter(io.Discard, "json", "info")
	} else {
		logger = logging.NewLogger(cfg.LogFormat, cfg.LogLevel, cfg.Verbose)
	}
	logging.SetDefault(logger)

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	shell := cfg.Shell
	if shell == "" {
		shell = runner.DefaultShell()
	}

	// Preflight checks
	if !cfg.SkipPreflight {
		result := preflight.RunAll(shell)
		for _, check := range result.Checks {
			fmt.Fprintln(os.Stderr, check)
		}
		if !result.Passed {
			fmt.Fprintln(os.Stderr, "Preflight checks failed (use -skip-preflight to override).")
			return 1
		}
	}

	// Metrics
	metrics.Register()
	metrics.SetInfo(version, cfg.Transport)

	var metricsSrv *metrics.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = metrics.NewServer(cfg.MetricsAddr, logger)
		if err := metricsSrv.Start(); err != nil {
			logger.Error("metrics_server_start_failed", "error", err)
			return 1
		}
	}

	tracker := stats.NewTracker()

	// Command runner with escalation metrics wired in
	cmdRunner := runner.New(runner.Config{
		Shell:   cfg.Shell,
		Timeout: cfg.CommandTimeout,
		Grace:   cfg.GracePeriod,
		Logger:  logger,
		Callbacks: runner.Callbacks{
			OnStart:    func(pid int) { metrics.CommandStarted() },
			OnEscalate: metrics.IncCommandEscalation,
			OnExit:     func(exitCode int, runtime time.Duration) { metrics.CommandFinished() },
		},
	})

	// Tool registry
	registry := tools.NewRegistry(logger, tracker)
	registry.Register(tools.NewPingTool(logger))
	registry.Register(tools.NewPortCheckTool(logger))
	registry.Register(tools.NewHTTPGetTool(logger))
	if cfg.DisableExec {
		logger.Info("exec_tool_disabled")
	} else {
		registry.Register(tools.NewExecTool(cmdRunner, logger))
	}

	mcpServer := server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	registry.Install(mcpServer)

	logger.Info("starting",
		"version", version,
		"transport", cfg.Transport,
		"tools", registry.Names(),
		"command_timeout", cfg.CommandTimeout,
		"grace_period", cfg.GracePeriod,
		"shell", shell,
		"metrics_addr", cfg.MetricsAddr,
	)
	if !cfg.TUIEnabled {
		printBanner(cfg, shell, registry.Len())
	}

	code := serve(cfg, mcpServer, tracker, logger)

	// Exit summary and optional metrics snapshot
	if !cfg.TUIEnabled {
		tracker.WriteSummary(os.Stderr)
	}
	if cfg.MetricsDump != "" {
		if err := metrics.DumpToFile(cfg.MetricsDump); err != nil {
			logger.Error("metrics_dump_failed", "path", cfg.MetricsDump, "error", err)
		} else {
			logger.Info("metrics_dumped", "path", cfg.MetricsDump)
		}
	}
	if metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logger.Error("metrics_server_shutdown_failed", "error", err)
		}
	}

	return code
}

// serve runs the selected transport until the client disconnects or a
// shutdown signal arrives.
func serve(cfg *config.Config, mcpServer *server.MCPServer, tracker *stats.Tracker, logger *slog.Logger) int {
	switch cfg.Transport {
	case config.TransportStdio:
		// ServeStdio installs its own signal handling and returns when
		// stdin closes or SIGINT/SIGTERM arrives.
		if err := server.ServeStdio(mcpServer); err != nil {
			logger.Error("stdio_transport_failed", "error", err)
			return 1
		}
		return 0

	case config.TransportHTTP:
		return serveHTTP(cfg, mcpServer, tracker, logger)

	default:
		// Validate already rejects unknown transports.
		logger.Error("unknown_transport", "transport", cfg.Transport)
		return 1
	}
}

// serveHTTP runs the streamable HTTP transport, optionally alongside the
// live dashboard, until a signal or a listener error stops it.
func serveHTTP(cfg *config.Config, mcpServer *server.MCPServer, tracker *stats.Tracker, logger *slog.Logger) int {
	httpServer := server.NewStreamableHTTPServer(mcpServer)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(cfg.HTTPAddr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := 0
	if cfg.TUIEnabled {
		program := tea.NewProgram(tui.New(tui.Config{
			Version:     version,
			HTTPAddr:    cfg.HTTPAddr,
			MetricsAddr: cfg.MetricsAddr,
			StatsSource: tracker,
		}), tea.WithAltScreen())

		// A signal or transport failure quits the dashboard, which in
		// turn ends the serve loop below.
		go func() {
			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil {
					logger.Error("http_transport_failed", "error", err)
				}
			}
			program.Quit()
		}()

		if _, err := program.Run(); err != nil {
			logger.Error("tui_failed", "error", err)
			code = 1
		}
	} else {
		select {
		case <-ctx.Done():
			logger.Info("shutdown_signal_received")
		case err := <-errCh:
			if err != nil {
				logger.Error("http_transport_failed", "error", err)
				code = 1
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_transport_shutdown_failed", "error", err)
	}
	return code
}

// printBanner prints the startup banner to stderr (stdout may carry the
// stdio protocol stream).
func printBanner(cfg *config.Config, shell string, toolCount int) {
	w := os.Stderr
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔═══════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                        go-mcp-nettools                            ║")
	fmt.Fprintln(w, "║        Network Diagnostics and Command Execution over MCP         ║")
	fmt.Fprintln(w, "╚═══════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Transport:   %s\n", cfg.Transport)
	if cfg.Transport == config.TransportHTTP {
		fmt.Fprintf(w, "  Listen:      http://%s/mcp\n", cfg.HTTPAddr)
	}
	fmt.Fprintf(w, "  Tools:       %d registered\n", toolCount)
	fmt.Fprintf(w, "  Shell:       %s\n", shell)
	fmt.Fprintf(w, "  Timeout:     %s (grace %s per signal)\n", cfg.CommandTimeout, cfg.GracePeriod)
	if cfg.MetricsAddr != "" {
		fmt.Fprintf(w, "  Metrics:     http://%s/metrics\n", cfg.MetricsAddr)
	}
	if cfg.DisableExec {
		fmt.Fprintln(w, "  Exec:        DISABLED (-disable-exec)")
	} else {
		fmt.Fprintln(w, "  Exec:        ⚠️  execute_bash_command runs arbitrary commands")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop.")
	fmt.Fprintln(w)
}
