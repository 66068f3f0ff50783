package logx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/mailgun/pkg/logx"
)

func newJSONLogger(buf *bytes.Buffer, level logx.Level) *logx.Logger {
	cfg := logx.DefaultConfig()
	cfg.Format = logx.FormatJSON
	cfg.EnableTimestamp = false
	cfg.Level = level
	cfg.Output = buf
	return logx.NewLogger(cfg)
}

func decodeLine(t *testing.T, line string) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("log line is not JSON: %q (%v)", line, err)
	}
	return out
}

func TestLogger_JSONFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, logx.LevelInfo)

	l.WithFields(logx.Fields{"domain": "mg.example.com"}).
		WithError(errors.New("boom")).
		Info("send failed")

	got := decodeLine(t, strings.TrimSpace(buf.String()))
	if got["message"] != "send failed" {
		t.Fatalf("unexpected message %v", got["message"])
	}
	if got["level"] != "info" {
		t.Fatalf("unexpected level %v", got["level"])
	}
	if got["domain"] != "mg.example.com" {
		t.Fatalf("unexpected domain %v", got["domain"])
	}
	if got["error"] != "boom" {
		t.Fatalf("unexpected error %v", got["error"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, logx.LevelWarn)

	l.WithField("k", "v").Debug("hidden")
	l.WithField("k", "v").Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	l.SetLevel(logx.LevelDebug)
	l.WithField("k", "v").Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected debug line after SetLevel, got %q", buf.String())
	}
	if l.GetLevel() != logx.LevelDebug {
		t.Fatalf("expected debug level, got %s", l.GetLevel())
	}
}

func TestLogger_Off(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, logx.LevelOff)
	l.WithField("k", "v").Error("nope")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when off, got %q", buf.String())
	}
}

func TestEntry_WithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := newJSONLogger(&buf, logx.LevelInfo)

	ctx := logx.ContextWithRequestID(context.Background(), "req-1")
	l.WithField("a", 1).WithContext(ctx).Info("hello")

	got := decodeLine(t, strings.TrimSpace(buf.String()))
	if got["request_id"] != "req-1" {
		t.Fatalf("expected request_id, got %v", got["request_id"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]logx.Level{
		"debug":   logx.LevelDebug,
		"WARNING": logx.LevelWarn,
		"off":     logx.LevelOff,
		"bogus":   logx.LevelInfo,
	}
	for in, want := range cases {
		if got := logx.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_COLOR", "0")

	cfg := logx.LoadFromEnv()
	if cfg.Level != logx.LevelError || cfg.Format != logx.FormatJSON || cfg.EnableColors {
		t.Fatalf("unexpected config %+v", cfg)
	}
}
