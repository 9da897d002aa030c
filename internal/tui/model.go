package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/go-mcp-nettools/internal/stats"
)

// refreshInterval is how often the dashboard pulls a new snapshot.
const refreshInterval = time.Second

// TickMsg is sent periodically to update the display.
type TickMsg time.Time

// StatsSource provides invocation statistics. *stats.Tracker satisfies it.
type StatsSource interface {
	Snapshot() []stats.ToolSummary
	TotalInvocations() int64
	Uptime() time.Duration
}

// Config holds TUI configuration.
type Config struct {
	Version     string
	HTTPAddr    string
	MetricsAddr string
	StatsSource StatsSource
}

// Model represents the TUI state.
type Model struct {
	version     string
	httpAddr    string
	metricsAddr string
	source      StatsSource

	summaries  []stats.ToolSummary
	total      int64
	lastUpdate time.Time

	width  int
	height int

	quitting bool
}

// New creates a new TUI model.
func New(cfg Config) Model {
	return Model{
		version:     cfg.Version,
		httpAddr:    cfg.HTTPAddr,
		metricsAddr: cfg.MetricsAddr,
		source:      cfg.StatsSource,
		lastUpdate:  time.Now(),
		width:       80,
		height:      24,
	}
}

// Init starts the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		if m.source != nil {
			m.summaries = m.source.Snapshot()
			m.total = m.source.TotalInvocations()
		}
		m.lastUpdate = time.Time(msg)
		return m, tickCmd()
	}

	return m, nil
}

// Quitting reports whether the user asked to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
