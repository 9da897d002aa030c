// Package tui provides a live terminal dashboard for the tool server.
//
// The TUI uses Bubble Tea for the application framework and Lipgloss for
// styling. It shows per-tool invocation counts, error counts, and latency
// quantiles, refreshed once a second. Only available with the HTTP
// transport: under stdio the protocol owns the terminal.
package tui

import "github.com/charmbracelet/lipgloss"

// Colors based on a modern dark theme
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorSuccess = lipgloss.Color("#10B981") // Green
	colorError   = lipgloss.Color("#EF4444") // Red

	colorText      = lipgloss.Color("#E5E7EB") // Light gray
	colorTextMuted = lipgloss.Color("#9CA3AF") // Medium gray
	colorBorder    = lipgloss.Color("#374151") // Border gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(colorTextMuted).
				Bold(true)

	toolNameStyle = lipgloss.NewStyle().
			Foreground(colorText)

	okStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	errStyle = lipgloss.NewStyle().
			Foreground(colorError)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)
)
