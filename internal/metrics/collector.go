// Package metrics provides Prometheus metrics for go-mcp-nettools.
//
// All metrics are aggregate: per-tool labels only, never per-invocation,
// so cardinality stays flat no matter how many callers connect.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mcpInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mcp_nettools_info",
			Help: "Information about the server (value always 1)",
		},
		[]string{"version", "transport"},
	)

	mcpToolInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_tool_invocations_total",
			Help: "Total tool invocations by tool name",
		},
		[]string{"tool"},
	)

	mcpToolErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_tool_errors_total",
			Help: "Total tool invocations that returned an error result",
		},
		[]string{"tool"},
	)

	mcpToolDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "mcp_tool_duration_seconds",
			Help: "Tool invocation duration in seconds",
			// Tool latencies span milliseconds (port probe) to the
			// 90s command timeout plus the escalation ladder.
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 90, 120},
		},
		[]string{"tool"},
	)

	mcpCommandEscalationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mcp_command_escalations_total",
			Help: "Escalation signals sent to timed-out command process groups",
		},
		[]string{"signal"},
	)

	mcpCommandsRunning = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mcp_commands_running",
			Help: "Shell commands currently executing",
		},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry.
// Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			mcpInfo,
			mcpToolInvocationsTotal,
			mcpToolErrorsTotal,
			mcpToolDurationSeconds,
			mcpCommandEscalationsTotal,
			mcpCommandsRunning,
		)
	})
}

// SetInfo sets the static info gauge.
func SetInfo(version, transport string) {
	mcpInfo.WithLabelValues(version, transport).Set(1)
}

// ObserveToolInvocation records one completed tool invocation.
func ObserveToolInvocation(tool string, duration time.Duration, isError bool) {
	mcpToolInvocationsTotal.WithLabelValues(tool).Inc()
	mcpToolDurationSeconds.WithLabelValues(tool).Observe(duration.Seconds())
	if isError {
		mcpToolErrorsTotal.WithLabelValues(tool).Inc()
	}
}

// IncCommandEscalation counts an escalation signal by name
// (interrupt, terminate, kill).
func IncCommandEscalation(signal string) {
	mcpCommandEscalationsTotal.WithLabelValues(signal).Inc()
}

// CommandStarted increments the running-commands gauge.
func CommandStarted() {
	mcpCommandsRunning.Inc()
}

// CommandFinished decrements the running-commands gauge.
func CommandFinished() {
	mcpCommandsRunning.Dec()
}
