package logger

import (
	"bytes"
	"context"
	log "log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

func TestContextHandlerAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)})

	ctx := context.WithValue(context.Background(), TraceIDKey, "abc-123")
	l.InfoContext(ctx, "hello")

	if !strings.Contains(buf.String(), `"trace_id":"abc-123"`) {
		t.Errorf("trace_id missing: %s", buf.String())
	}
}

func TestRemoteFilterHandlerDropsUntraced(t *testing.T) {
	var remote bytes.Buffer
	h := &ContextHandler{&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)}}
	l := log.New(h)

	l.Info("background")
	if remote.Len() != 0 {
		t.Fatalf("untraced record forwarded: %s", remote.String())
	}

	l.InfoContext(WithTraceID(context.Background(), "t1"), "request")
	if !strings.Contains(remote.String(), "request") {
		t.Errorf("traced record not forwarded")
	}

	l.Error("job failed")
	if !strings.Contains(remote.String(), "job failed") {
		t.Errorf("untraced error not forwarded")
	}
}

func TestContextHandlerAddsUserID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)}).With("service", "test")

	ctx := context.WithValue(WithTraceID(context.Background(), "t2"), UserIDKey, uint64(42))
	l.InfoContext(ctx, "liked")

	out := buf.String()
	if !strings.Contains(out, `"user_id":42`) || !strings.Contains(out, `"trace_id":"t2"`) {
		t.Errorf("user_id/trace_id missing: %s", out)
	}
}

func TestTeeHandlerRespectsEachLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&debugBuf, &log.HandlerOptions{Level: log.LevelDebug}),
		log.NewJSONHandler(&warnBuf, &log.HandlerOptions{Level: log.LevelWarn}),
	}}
	l := log.New(tee)

	l.Debug("detail")
	if debugBuf.Len() == 0 || warnBuf.Len() != 0 {
		t.Fatalf("debug record routing wrong: debug=%q warn=%q", debugBuf.String(), warnBuf.String())
	}
	l.Warn("slow")
	if !strings.Contains(warnBuf.String(), "slow") {
		t.Errorf("warn record not delivered to warn handler")
	}
}

func TestSQLOperation(t *testing.T) {
	tests := map[string]string{
		"SELECT * FROM `places`":      "SELECT",
		"  update places set x = 1":   "UPDATE",
		"":                            "Query",
		"INSERT INTO `reviews` (...)": "INSERT",
	}
	for sql, want := range tests {
		if got := sqlOperation(sql); got != want {
			t.Errorf("sqlOperation(%q) = %q, want %q", sql, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if parseLevel("debug") != log.LevelDebug {
		t.Error("debug not parsed")
	}
	if parseLevel("WARN") != log.LevelWarn {
		t.Error("WARN not parsed")
	}
	if parseLevel("nonsense") != log.LevelInfo {
		t.Error("unknown level should fall back to info")
	}
}

func TestSlowThresholdAndTruncate(t *testing.T) {
	if slowThreshold(0, time.Second) != time.Second {
		t.Error("zero should use default")
	}
	if slowThreshold(50, time.Second) != 50*time.Millisecond {
		t.Error("configured value ignored")
	}
	if got := truncate("abcdef", 3); got != "abc...[truncated]" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("ab", 3); got != "ab" {
		t.Errorf("truncate short = %q", got)
	}
}

func TestFormatAccessLog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/places", nil)
	line := formatAccessLog(gin.LogFormatterParams{
		Request:    req,
		TimeStamp:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		StatusCode: 503,
		Method:     http.MethodGet,
		Path:       "/api/places",
		Keys:       map[any]any{TraceIDKey: "tid"},
	})

	var entry accessLog
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("access log is not JSON: %v (%q)", err, line)
	}
	if entry.TraceID != "tid" || entry.Level != "ERROR" || entry.Status != 503 {
		t.Errorf("unexpected entry: %+v", entry)
	}
}
