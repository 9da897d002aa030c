package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type fakeRecorder struct {
	tools     []string
	durations []time.Duration
	errors    []bool
}

func (f *fakeRecorder) Record(tool string, duration time.Duration, isError bool) {
	f.tools = append(f.tools, tool)
	f.durations = append(f.durations, duration)
	f.errors = append(f.errors, isError)
}

type stubTool struct {
	name    string
	handler server.ToolHandlerFunc
}

func (s *stubTool) Definition() mcp.Tool {
	return mcp.NewTool(s.name, mcp.WithDescription("stub"))
}

func (s *stubTool) Handler() server.ToolHandlerFunc { return s.handler }

func okHandler(text string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(text), nil
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	reg := NewRegistry(testLogger(), nil)
	reg.Register(&stubTool{name: "zeta", handler: okHandler("z")})
	reg.Register(&stubTool{name: "alpha", handler: okHandler("a")})
	reg.Register(&stubTool{name: "mid", handler: okHandler("m")})

	if reg.Len() != 3 {
		t.Fatalf("Len = %d, want 3", reg.Len())
	}
	names := reg.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("Names() = %v, want %v", names, want)
		}
	}
}

func TestInstrumentRecordsSuccess(t *testing.T) {
	rec := &fakeRecorder{}
	reg := NewRegistry(testLogger(), rec)

	wrapped := reg.instrument("stub_tool", okHandler("ok"))
	result, err := wrapped(context.Background(), newRequest("stub_tool", nil))
	if err != nil {
		t.Fatalf("wrapped handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("unexpected error result")
	}

	if len(rec.tools) != 1 || rec.tools[0] != "stub_tool" {
		t.Fatalf("recorder tools = %v", rec.tools)
	}
	if rec.errors[0] {
		t.Error("success recorded as error")
	}
	if rec.durations[0] < 0 {
		t.Error("negative duration recorded")
	}
}

func TestInstrumentRecordsErrorResult(t *testing.T) {
	rec := &fakeRecorder{}
	reg := NewRegistry(testLogger(), rec)

	wrapped := reg.instrument("failing_tool", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("Error: nope"), nil
	})
	result, err := wrapped(context.Background(), newRequest("failing_tool", nil))
	if err != nil {
		t.Fatalf("wrapped handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if len(rec.errors) != 1 || !rec.errors[0] {
		t.Errorf("error result not recorded as error: %v", rec.errors)
	}
}

func TestInstrumentConvertsPanic(t *testing.T) {
	rec := &fakeRecorder{}
	reg := NewRegistry(testLogger(), rec)

	wrapped := reg.instrument("panicky_tool", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		panic("boom")
	})
	result, err := wrapped(context.Background(), newRequest("panicky_tool", nil))
	if err != nil {
		t.Fatalf("panic should become an error result, not an error: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected an error result from the recovered panic")
	}
	if !strings.Contains(resultText(t, result), "unexpected server-side error") {
		t.Errorf("result = %q", resultText(t, result))
	}
	if len(rec.errors) != 1 || !rec.errors[0] {
		t.Errorf("panic not recorded as error: %v", rec.errors)
	}
}

func TestInstrumentNilRecorder(t *testing.T) {
	reg := NewRegistry(testLogger(), nil)

	wrapped := reg.instrument("stub_tool", okHandler("fine"))
	if _, err := wrapped(context.Background(), newRequest("stub_tool", nil)); err != nil {
		t.Fatalf("nil recorder should be tolerated: %v", err)
	}
}
