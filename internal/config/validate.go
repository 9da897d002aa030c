package config

import (
	"errors"
	"fmt"
	"net"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
func Validate(cfg *Config) error {
	var errs []error

	switch cfg.Transport {
	case TransportStdio, TransportHTTP:
	default:
		errs = append(errs, ValidationError{
			Field:   "transport",
			Message: fmt.Sprintf("must be %q or %q, got %q", TransportStdio, TransportHTTP, cfg.Transport),
		})
	}

	if cfg.Transport == TransportHTTP {
		if err := validateAddr(cfg.HTTPAddr); err != nil {
			errs = append(errs, ValidationError{Field: "http", Message: err.Error()})
		}
	}

	if cfg.CommandTimeout <= 0 {
		errs = append(errs, ValidationError{
			Field:   "command_timeout",
			Message: "must be positive",
		})
	}

	if cfg.GracePeriod <= 0 {
		errs = append(errs, ValidationError{
			Field:   "grace_period",
			Message: "must be positive",
		})
	}

	if cfg.MetricsAddr != "" {
		if err := validateAddr(cfg.MetricsAddr); err != nil {
			errs = append(errs, ValidationError{Field: "metrics", Message: err.Error()})
		}
	}

	switch cfg.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be json or text, got %q", cfg.LogFormat),
		})
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown level %q", cfg.LogLevel),
		})
	}

	// The stdio transport owns the terminal; a dashboard would fight it.
	if cfg.TUIEnabled && cfg.Transport != TransportHTTP {
		errs = append(errs, ValidationError{
			Field:   "tui",
			Message: "requires -transport http",
		})
	}

	return errors.Join(errs...)
}

// validateAddr checks a host:port listen address.
func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %v", addr, err)
	}
	if port == "" {
		return fmt.Errorf("listen address %q has no port", addr)
	}
	return nil
}
