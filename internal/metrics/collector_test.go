package metrics

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

func TestRegisterIsIdempotent(t *testing.T) {
	// MustRegister panics on duplicates; Register must guard against that.
	Register()
	Register()
}

func TestObserveToolInvocation(t *testing.T) {
	Register()

	before := metricValue(t, mcpToolInvocationsTotal.WithLabelValues("ping_target"))
	ObserveToolInvocation("ping_target", 50*time.Millisecond, false)
	ObserveToolInvocation("ping_target", 100*time.Millisecond, true)

	after := metricValue(t, mcpToolInvocationsTotal.WithLabelValues("ping_target"))
	if after-before != 2 {
		t.Errorf("invocations delta = %v, want 2", after-before)
	}

	errs := metricValue(t, mcpToolErrorsTotal.WithLabelValues("ping_target"))
	if errs < 1 {
		t.Errorf("errors = %v, want >= 1", errs)
	}
}

func TestCommandGauge(t *testing.T) {
	Register()

	CommandStarted()
	CommandStarted()
	CommandFinished()
	defer CommandFinished()

	if value := metricValue(t, mcpCommandsRunning); value != 1 {
		t.Errorf("running gauge = %v, want 1", value)
	}
}

func TestDumpIsParseable(t *testing.T) {
	Register()
	ObserveToolInvocation("check_port_status", 10*time.Millisecond, false)
	IncCommandEscalation("interrupt")

	var buf bytes.Buffer
	if err := Dump(&buf); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "mcp_tool_invocations_total") {
		t.Errorf("dump missing invocation counter:\n%s", out)
	}
	if strings.Contains(out, "go_goroutines") {
		t.Error("dump should not include runtime collectors")
	}

	// The dump must round-trip through the exposition-format parser.
	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parsing dump: %v", err)
	}
	if _, ok := families["mcp_command_escalations_total"]; !ok {
		t.Error("parsed dump missing escalation counter")
	}
}

func TestServerHealthEndpoints(t *testing.T) {
	Register()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer("127.0.0.1:0", logger)

	// Exercise the mux directly rather than binding a port.
	for _, path := range []string{"/health", "/healthz", "/ready", "/readyz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.server.Handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

// metricValue reads the current value of a counter or gauge.
func metricValue(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()

	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatalf("reading metric: %v", err)
	}
	if pb.Counter != nil {
		return pb.GetCounter().GetValue()
	}
	if pb.Gauge != nil {
		return pb.GetGauge().GetValue()
	}
	t.Fatal("metric is neither counter nor gauge")
	return 0
}
