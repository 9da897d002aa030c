// Package config provides configuration management for go-mcp-nettools.
package config

import "time"

// Transport values accepted by -transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds all configuration options for the server.
type Config struct {
	// Transport
	Transport string `json:"transport"` // stdio, http
	HTTPAddr  string `json:"http_addr"` // streamable HTTP listen address

	// Command execution
	CommandTimeout time.Duration `json:"command_timeout"`
	GracePeriod    time.Duration `json:"grace_period"`
	Shell          string        `json:"shell"` // empty = autodetect
	DisableExec    bool          `json:"disable_exec"`

	// Observability
	MetricsAddr string `json:"metrics_addr"`
	MetricsDump string `json:"metrics_dump"` // file path, empty = off
	Verbose     bool   `json:"verbose"`
	LogFormat   string `json:"log_format"` // json, text
	LogLevel    string `json:"log_level"`

	// Dashboard
	TUIEnabled bool `json:"tui"`

	// Diagnostics
	SkipPreflight bool `json:"skip_preflight"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		// Transport
		Transport: TransportStdio,
		HTTPAddr:  "0.0.0.0:17090",

		// Command execution
		CommandTimeout: 90 * time.Second,
		GracePeriod:    5 * time.Second,

		// Observability
		MetricsAddr: "0.0.0.0:17092", // see docs in flags.go usage text
		Verbose:     false,
		LogFormat:   "json",
		LogLevel:    "info",
	}
}
