package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/randomizedcoder/go-mcp-nettools/internal/stats"
)

func newTestModel() Model {
	tracker := stats.NewTracker()
	tracker.Record("ping_target", 50*time.Millisecond, false)
	tracker.Record("execute_bash_command", 2*time.Second, true)

	return New(Config{
		Version:     "test",
		HTTPAddr:    "127.0.0.1:17090",
		MetricsAddr: "127.0.0.1:17092",
		StatsSource: tracker,
	})
}

func TestTickRefreshesSnapshot(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(TickMsg(time.Now()))
	m = updated.(Model)

	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(m.summaries) != 2 {
		t.Errorf("summaries = %d, want 2", len(m.summaries))
	}
	if m.total != 2 {
		t.Errorf("total = %d, want 2", m.total)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		m := newTestModel()

		var msg tea.KeyMsg
		if key == "q" {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}

		updated, cmd := m.Update(msg)
		m = updated.(Model)

		if !m.Quitting() {
			t.Errorf("key %q should quit", key)
		}
		if cmd == nil {
			t.Errorf("key %q should return tea.Quit", key)
		}
	}
}

func TestWindowResize(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
}

func TestViewContainsToolRows(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(TickMsg(time.Now()))
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"ping_target", "execute_bash_command", "go-mcp-nettools", "metrics"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	m := New(Config{Version: "test", StatsSource: stats.NewTracker()})
	updated, _ := m.Update(TickMsg(time.Now()))
	m = updated.(Model)

	if !strings.Contains(m.View(), "waiting for invocations") {
		t.Error("empty view should show the waiting placeholder")
	}
}

func TestViewWhileQuitting(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)

	if m.View() != "" {
		t.Error("quitting view should be empty")
	}
}
