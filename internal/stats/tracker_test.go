package stats

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestRecordAndSnapshot(t *testing.T) {
	tracker := NewTracker()

	tracker.Record("ping_target", 100*time.Millisecond, false)
	tracker.Record("ping_target", 200*time.Millisecond, true)
	tracker.Record("check_port_status", 5*time.Millisecond, false)

	summaries := tracker.Snapshot()
	if len(summaries) != 2 {
		t.Fatalf("snapshot has %d tools, want 2", len(summaries))
	}

	// Sorted by name: check_port_status first.
	if summaries[0].Tool != "check_port_status" || summaries[1].Tool != "ping_target" {
		t.Errorf("snapshot order = %q, %q", summaries[0].Tool, summaries[1].Tool)
	}

	ping := summaries[1]
	if ping.Invocations != 2 {
		t.Errorf("ping invocations = %d, want 2", ping.Invocations)
	}
	if ping.Errors != 1 {
		t.Errorf("ping errors = %d, want 1", ping.Errors)
	}
	if ping.LastCall.IsZero() {
		t.Error("ping last call not set")
	}
}

func TestQuantiles(t *testing.T) {
	tracker := NewTracker()

	// 100 samples from 10ms to 1s.
	for i := 1; i <= 100; i++ {
		tracker.Record("execute_bash_command", time.Duration(i)*10*time.Millisecond, false)
	}

	summary := tracker.Snapshot()[0]
	if summary.P50 < 0.3 || summary.P50 > 0.7 {
		t.Errorf("p50 = %v, want around 0.5", summary.P50)
	}
	if summary.P99 < summary.P95 || summary.P95 < summary.P50 {
		t.Errorf("quantiles not ordered: p50=%v p95=%v p99=%v",
			summary.P50, summary.P95, summary.P99)
	}
}

func TestTotalInvocations(t *testing.T) {
	tracker := NewTracker()

	if tracker.TotalInvocations() != 0 {
		t.Error("fresh tracker should report zero invocations")
	}

	tracker.Record("a", time.Millisecond, false)
	tracker.Record("b", time.Millisecond, false)
	tracker.Record("b", time.Millisecond, true)

	if total := tracker.TotalInvocations(); total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestConcurrentRecord(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.Record("simple_http_get", time.Millisecond, false)
			}
		}()
	}
	wg.Wait()

	if total := tracker.TotalInvocations(); total != 1000 {
		t.Errorf("total = %d, want 1000", total)
	}
}

func TestWriteSummary(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("ping_target", 50*time.Millisecond, false)

	var buf bytes.Buffer
	tracker.WriteSummary(&buf)

	out := buf.String()
	if !strings.Contains(out, "ping_target") {
		t.Errorf("summary missing tool row:\n%s", out)
	}
	if !strings.Contains(out, "Uptime:") {
		t.Errorf("summary missing uptime:\n%s", out)
	}
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewTracker().WriteSummary(&buf)

	if !strings.Contains(buf.String(), "No tools were invoked.") {
		t.Errorf("empty summary = %q", buf.String())
	}
}
