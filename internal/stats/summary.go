package stats

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteSummary renders a human-readable exit summary of all tool activity.
// Printed to stderr at shutdown.
func (t *Tracker) WriteSummary(w io.Writer) {
	summaries := t.Snapshot()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Tool Invocation Summary ===")
	fmt.Fprintf(w, "Uptime: %s\n", formatDuration(t.Uptime()))

	if len(summaries) == 0 {
		fmt.Fprintln(w, "No tools were invoked.")
		return
	}

	fmt.Fprintf(w, "%-22s %10s %8s %10s %10s %10s\n",
		"TOOL", "CALLS", "ERRORS", "P50", "P95", "P99")
	for _, s := range summaries {
		fmt.Fprintf(w, "%-22s %10d %8d %10s %10s %10s\n",
			s.Tool,
			s.Invocations,
			s.Errors,
			formatSeconds(s.P50),
			formatSeconds(s.P95),
			formatSeconds(s.P99),
		)
	}
}

// formatSeconds renders a latency in seconds as a compact duration.
func formatSeconds(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds * float64(time.Second))
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// formatDuration renders an uptime as h/m/s without fractional noise.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	var b strings.Builder
	if h := int(d.Hours()); h > 0 {
		fmt.Fprintf(&b, "%dh", h)
	}
	if m := int(d.Minutes()) % 60; m > 0 || b.Len() > 0 {
		fmt.Fprintf(&b, "%dm", m)
	}
	fmt.Fprintf(&b, "%ds", int(d.Seconds())%60)
	return b.String()
}
