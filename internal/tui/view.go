package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderToolTable(),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	uptime := time.Duration(0)
	if m.source != nil {
		uptime = m.source.Uptime()
	}

	header := fmt.Sprintf(
		" go-mcp-nettools %s │ Calls: %d │ Uptime: %s ",
		m.version,
		m.total,
		formatDuration(uptime),
	)
	return headerStyle.Width(m.width).Render(header)
}

func (m Model) renderToolTable() string {
	var b strings.Builder

	b.WriteString(tableHeaderStyle.Render(fmt.Sprintf(
		"%-22s %8s %8s %9s %9s %9s",
		"TOOL", "CALLS", "ERRORS", "P50", "P95", "P99",
	)))
	b.WriteString("\n")

	if len(m.summaries) == 0 {
		b.WriteString(footerStyle.Render("waiting for invocations..."))
		return sectionStyle.Render(b.String())
	}

	for i, s := range m.summaries {
		errCell := okStyle.Render(fmt.Sprintf("%8d", s.Errors))
		if s.Errors > 0 {
			errCell = errStyle.Render(fmt.Sprintf("%8d", s.Errors))
		}

		b.WriteString(fmt.Sprintf(
			"%s %8d %s %9s %9s %9s",
			toolNameStyle.Render(fmt.Sprintf("%-22s", s.Tool)),
			s.Invocations,
			errCell,
			formatLatency(s.P50),
			formatLatency(s.P95),
			formatLatency(s.P99),
		))
		if i < len(m.summaries)-1 {
			b.WriteString("\n")
		}
	}

	return sectionStyle.Render(b.String())
}

func (m Model) renderFooter() string {
	parts := []string{
		fmt.Sprintf("mcp: http://%s/mcp", m.httpAddr),
	}
	if m.metricsAddr != "" {
		parts = append(parts, fmt.Sprintf("metrics: http://%s/metrics", m.metricsAddr))
	}
	parts = append(parts, "q to quit")
	return footerStyle.Render(" " + strings.Join(parts, " │ "))
}

// formatLatency renders a quantile in seconds compactly.
func formatLatency(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	if seconds < 1 {
		return fmt.Sprintf("%.0fms", seconds*1000)
	}
	return fmt.Sprintf("%.2fs", seconds)
}

// formatDuration renders an uptime as h/m/s.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, mins, secs)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	return fmt.Sprintf("%ds", secs)
}
