package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultDoesNotPanic(t *testing.T) {
	t.Parallel()
	log := Default()
	log.Info("info")
	log.Debug("debug")
	log.Warn("warn")
	log.Error("error")
}

func TestNoop(t *testing.T) {
	t.Parallel()
	log := Noop()
	log.Info("swallowed")
	log.Error("also swallowed")
}

func TestJSONLevelAndFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	log.Info("opened array", "name", "KEYWORDS")

	out := buf.String()
	if !strings.Contains(out, "opened array") {
		t.Fatalf("missing message, got: %s", out)
	}
	if !strings.Contains(out, `"name":"KEYWORDS"`) {
		t.Fatalf("missing field, got: %s", out)
	}
	if !strings.Contains(out, `"level":"INFO"`) {
		t.Fatalf("missing level, got: %s", out)
	}
}

func TestJSONLevelFiltering(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Info("filtered out")
	log.Debug("also filtered")
	if buf.Len() > 0 {
		t.Fatalf("expected nothing below warn, got: %s", buf.String())
	}
	log.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("expected warn message, got: %s", buf.String())
	}
}

func TestPrettyIncludesMessageAndAttrs(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)
	log.Info("framing error", "head", 16, "tail", 17)

	out := buf.String()
	if !strings.Contains(out, "framing error") {
		t.Fatalf("missing message, got: %s", out)
	}
	if !strings.Contains(out, "head=16") || !strings.Contains(out, "tail=17") {
		t.Fatalf("missing attrs, got: %s", out)
	}
}

func TestWithAddsPersistentFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo).With("reader", "r1")
	log.Info("next array")

	if !strings.Contains(buf.String(), `"reader":"r1"`) {
		t.Fatalf("expected persistent field, got: %s", buf.String())
	}
}

func TestFromContextDefaultsWhenAbsent(t *testing.T) {
	t.Parallel()
	log := FromContext(context.Background())
	if log == nil {
		t.Fatal("FromContext returned nil")
	}
	log.Info("still works")
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	ctx := WithContext(context.Background(), log)

	FromContext(ctx).Info("routed via context")
	if !strings.Contains(buf.String(), "routed via context") {
		t.Fatalf("expected message via context logger, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPrettyHandlerGroupNesting(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, nil)
	l := slog.New(h.WithGroup("a").WithGroup("b"))
	l.Info("nested", "key", "val")

	if !strings.Contains(buf.String(), "a.b.key=val") {
		t.Fatalf("expected nested group prefix, got: %s", buf.String())
	}
}

func TestPrettyQuotesValuesWithSpaces(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, nil))
	l.Info("msg", "path", "/tmp/has space.SMSPEC")

	if !strings.Contains(buf.String(), `path="/tmp/has space.SMSPEC"`) {
		t.Fatalf("expected quoted value, got: %s", buf.String())
	}
}

func TestNeedsQuoting(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"simple":     false,
		"has space":  true,
		"has\ttab":   true,
		`has"quote`:  true,
		"":           false,
		"no-special": false,
	}
	for in, want := range cases {
		if got := needsQuoting(in); got != want {
			t.Errorf("needsQuoting(%q) = %v, want %v", in, got, want)
		}
	}
}
