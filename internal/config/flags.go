package config

import (
	"flag"
	"fmt"
	"os"
)

// ParseFlags parses command-line flags and returns a Config.
func ParseFlags() (*Config, error) {
	return parseFlags(os.Args[1:])
}

// parseFlags is the testable core of ParseFlags.
func parseFlags(args []string) (*Config, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet("go-mcp-nettools", flag.ContinueOnError)

	// Transport
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "MCP transport: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "listen address for -transport http")

	// Command execution
	fs.DurationVar(&cfg.CommandTimeout, "command-timeout", cfg.CommandTimeout, "primary timeout for execute_bash_command")
	fs.DurationVar(&cfg.GracePeriod, "grace-period", cfg.GracePeriod, "grace wait after each escalation signal")
	fs.StringVar(&cfg.Shell, "shell", cfg.Shell, "shell for command execution (default: autodetect bash, then sh)")
	fs.BoolVar(&cfg.DisableExec, "disable-exec", cfg.DisableExec, "do not expose the execute_bash_command tool")

	// Observability
	fs.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics listen address (empty = off)")
	fs.StringVar(&cfg.MetricsDump, "metrics-dump", cfg.MetricsDump, "write a final metrics snapshot to this file at shutdown")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose (debug) logging")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: json or text")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	// Dashboard
	fs.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "live dashboard (requires -transport http)")

	// Diagnostics
	fs.BoolVar(&cfg.SkipPreflight, "skip-preflight", cfg.SkipPreflight, "skip startup environment checks")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `go-mcp-nettools - basic network and command tools over MCP

Usage:
  go-mcp-nettools [flags]

Tools served: ping_target, check_port_status, simple_http_get,
execute_bash_command.

Transport:
`)
		printFlags(fs, "transport", "http")
		fmt.Fprintf(fs.Output(), "\nCommand Execution:\n")
		printFlags(fs, "command-timeout", "grace-period", "shell", "disable-exec")
		fmt.Fprintf(fs.Output(), "\nObservability:\n")
		printFlags(fs, "metrics", "metrics-dump", "v", "log-format", "log-level")
		fmt.Fprintf(fs.Output(), "\nDashboard:\n")
		printFlags(fs, "tui")
		fmt.Fprintf(fs.Output(), "\nDiagnostics:\n")
		printFlags(fs, "skip-preflight")
		fmt.Fprintf(fs.Output(), `
Examples:
  # Serve over stdio for a local MCP client
  go-mcp-nettools

  # Serve over HTTP with the live dashboard
  go-mcp-nettools -transport http -http 0.0.0.0:17090 -tui
`)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return cfg, nil
}

// printFlags prints usage lines for the named flags, in order.
func printFlags(fs *flag.FlagSet, names ...string) {
	for _, name := range names {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		fmt.Fprintf(fs.Output(), "  -%-18s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" {
			fmt.Fprintf(fs.Output(), " (default %s)", f.DefValue)
		}
		fmt.Fprintln(fs.Output())
	}
}
