package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Level tag colors on the console.
const (
	colorDebug = "#6B7280"
	colorInfo  = "#60A5FA"
	colorWarn  = "#F59E0B"
	colorError = "#EF4444"
)

// consoleHandler writes records as "[LEVEL] - message key=value" lines.
// Attributes shared through WithAttrs, like the session id, are left to the
// log file; only the record's own attributes are written.
type consoleHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	level  slog.Leveler
	styles map[slog.Level]lipgloss.Style
	prefix string
}

func newConsoleHandler(w io.Writer, level slog.Leveler, r *lipgloss.Renderer) *consoleHandler {
	h := &consoleHandler{mu: new(sync.Mutex), w: w, level: level}
	if r != nil {
		h.styles = map[slog.Level]lipgloss.Style{
			slog.LevelDebug: r.NewStyle().Foreground(lipgloss.Color(colorDebug)),
			slog.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color(colorInfo)),
			slog.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color(colorWarn)).Bold(true),
			slog.LevelError: r.NewStyle().Foreground(lipgloss.Color(colorError)).Bold(true),
		}
	}
	return h
}

func (h *consoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b bytes.Buffer
	b.WriteString(h.tag(r.Level))
	b.WriteString(" - ")
	b.WriteString(r.Message)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(b.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	n := *h
	n.prefix = h.prefix + name + "."
	return &n
}

// tag renders the bracketed level name, styled when the handler has styles.
func (h *consoleHandler) tag(l slog.Level) string {
	t := "[" + l.String() + "]"
	if h.styles == nil {
		return t
	}
	base := slog.LevelDebug
	for _, s := range []slog.Level{slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l >= s {
			base = s
		}
	}
	return h.styles[base].Render(t)
}

func appendAttr(b *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, g := range a.Value.Group() {
			appendAttr(b, p, g)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	v := a.Value.String()
	if v == "" || strings.ContainsAny(v, " \t\n\"=") {
		v = strconv.Quote(v)
	}
	b.WriteString(v)
}
