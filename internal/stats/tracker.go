// Package stats tracks per-tool invocation statistics.
//
// Latency quantiles use T-Digest so memory stays bounded (~10KB per tool)
// no matter how many invocations are recorded. Snapshots feed the TUI and
// the exit summary.
package stats

import (
	"sort"
	"sync"
	"time"

	"github.com/influxdata/tdigest"
)

// ToolSummary is a point-in-time view of one tool's statistics.
type ToolSummary struct {
	Tool        string
	Invocations int64
	Errors      int64
	LastCall    time.Time

	// Latency quantiles in seconds.
	P50 float64
	P95 float64
	P99 float64
}

// toolStats holds the live counters for one tool.
type toolStats struct {
	invocations int64
	errors      int64
	lastCall    time.Time
	digest      *tdigest.TDigest
}

// Tracker aggregates invocation statistics across all tools.
// Safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	startTime time.Time
	tools     map[string]*toolStats
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		startTime: time.Now(),
		tools:     make(map[string]*toolStats),
	}
}

// Record adds one completed invocation.
func (t *Tracker) Record(tool string, duration time.Duration, isError bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ts, ok := t.tools[tool]
	if !ok {
		ts = &toolStats{
			// ~100 centroids, ~10KB per tool
			digest: tdigest.NewWithCompression(100),
		}
		t.tools[tool] = ts
	}

	ts.invocations++
	if isError {
		ts.errors++
	}
	ts.lastCall = time.Now()
	ts.digest.Add(duration.Seconds(), 1)
}

// Snapshot returns a summary per tool, sorted by tool name.
func (t *Tracker) Snapshot() []ToolSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	summaries := make([]ToolSummary, 0, len(t.tools))
	for name, ts := range t.tools {
		summaries = append(summaries, ToolSummary{
			Tool:        name,
			Invocations: ts.invocations,
			Errors:      ts.errors,
			LastCall:    ts.lastCall,
			P50:         ts.digest.Quantile(0.50),
			P95:         ts.digest.Quantile(0.95),
			P99:         ts.digest.Quantile(0.99),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Tool < summaries[j].Tool
	})
	return summaries
}

// TotalInvocations returns the invocation count across all tools.
func (t *Tracker) TotalInvocations() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total int64
	for _, ts := range t.tools {
		total += ts.invocations
	}
	return total
}

// Uptime returns the time since the tracker was created.
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.startTime)
}
