package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fatih/color"
)

// PrettyHandler is a slog.Handler that formats records with colored level
// labels for terminal output, used by cmd/eclsum when stderr is a tty.
type PrettyHandler struct {
	opts  slog.HandlerOptions
	w     io.Writer
	mu    sync.Mutex
	group string
	attrs []slog.Attr
}

// NewPrettyHandler creates a new PrettyHandler.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{opts: *opts, w: w}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	levelStyle := levelStyle(r.Level)
	line := fmt.Sprintf("%s %s %s",
		color.New(color.FgHiBlack).Sprintf("[%s]", r.Time.Format(time.DateTime)),
		levelStyle.Sprint(padLevel(r.Level.String())),
		r.Message,
	)

	attrs := make([]slog.Attr, 0, len(h.attrs)+r.NumAttrs())
	attrs = append(attrs, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	if len(attrs) > 0 {
		pairs := make([]string, len(attrs))
		for i, a := range attrs {
			pairs[i] = formatAttr(a, h.group)
		}
		line += " " + color.New(color.FgCyan).Sprint(joinSpace(pairs))
	}

	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &PrettyHandler{opts: h.opts, w: h.w, group: h.group, attrs: newAttrs}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroup := name
	if h.group != "" {
		newGroup = h.group + "." + name
	}
	return &PrettyHandler{opts: h.opts, w: h.w, group: newGroup, attrs: h.attrs}
}

func levelStyle(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow, color.Bold)
	case level >= slog.LevelInfo:
		return color.New(color.FgBlue, color.Bold)
	default:
		return color.New(color.FgHiBlack)
	}
}

func padLevel(level string) string {
	if len(level) == 4 {
		return level + " "
	}
	return level
}

func formatAttr(attr slog.Attr, group string) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	switch attr.Value.Kind() {
	case slog.KindString:
		s := attr.Value.String()
		if needsQuoting(s) {
			return fmt.Sprintf("%s=%q", key, s)
		}
		return key + "=" + s
	case slog.KindTime:
		return key + "=" + attr.Value.Time().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%s=%v", key, attr.Value.Any())
	}
}

func needsQuoting(s string) bool {
	for _, c := range s {
		if c == ' ' || c == '\t' || c == '\n' || c == '"' {
			return true
		}
	}
	return false
}

func joinSpace(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}
