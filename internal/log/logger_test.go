package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newBufferLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	return New(Config{Level: level, Component: ComponentApp, Output: buf})
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestWithComponent(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newBufferLogger(buf, slog.LevelInfo).WithComponent(ComponentSummarizer)
	if logger.Component() != ComponentSummarizer {
		t.Fatalf("component = %q", logger.Component())
	}
	logger.Info("summary reported", FieldWindowDays, 7)

	out := buf.String()
	if !strings.Contains(out, "component=summarizer") || !strings.Contains(out, "window_days=7") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestLogError(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newBufferLogger(buf, slog.LevelInfo)
	logger.LogError(context.Background(), "store failed", errors.New("boom"), OpCreate, nil)

	out := buf.String()
	for _, part := range []string{"level=ERROR", "error=boom", "operation=create"} {
		if !strings.Contains(out, part) {
			t.Errorf("output missing %q: %s", part, out)
		}
	}
}

func TestToSliceIsSorted(t *testing.T) {
	got := NewFields().WithOperation(OpList).WithClientIP("1.2.3.4").ToSlice()
	if len(got) != 4 || got[0] != FieldClientIP || got[2] != FieldOperation {
		t.Fatalf("unexpected slice: %v", got)
	}
}

func TestRequestMiddleware(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := newBufferLogger(buf, slog.LevelInfo)

	var fromCtx *Logger
	handler := RequestMiddleware(logger,
		func(*http.Request) string { return "req_test" },
		func(r *http.Request) string { return r.RemoteAddr },
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = FromContext(r.Context())
		w.WriteHeader(http.StatusBadRequest)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/expenses", nil))

	if fromCtx == nil || fromCtx.Component() != ComponentHTTP {
		t.Fatalf("expected http logger in context, got %+v", fromCtx)
	}
	if rr.Header().Get("X-Request-ID") != "req_test" {
		t.Fatalf("missing request id header")
	}
	out := buf.String()
	for _, part := range []string{"level=WARN", "status_code=400", "request_id=req_test"} {
		if !strings.Contains(out, part) {
			t.Errorf("output missing %q: %s", part, out)
		}
	}
}

func TestFromContextDefault(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
}
