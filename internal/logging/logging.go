// Package logging sets up the calculator's slog logger and adapts evaluator
// diagnostics to it.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

// New creates a logger writing "[LEVEL] - message" lines to console at the
// configured console level and, unless cfg.File is "-", detailed records to
// the log file at the configured file level. debug lowers the console level
// to debug. If r is not nil, console level tags are styled with it. The
// returned closer closes the log file.
func New(cfg config.LogConfig, debug bool, console io.Writer, r *lipgloss.Renderer) (*slog.Logger, io.Closer, error) {
	clvl, err := ParseLevel(cfg.Console)
	if err != nil {
		return nil, nil, fmt.Errorf("console level: %w", err)
	}
	if debug {
		clvl = slog.LevelDebug
	}
	handlers := fanout{newConsoleHandler(console, clvl, r)}
	var closer io.Closer = nopCloser{}
	if cfg.File != "" && cfg.File != "-" {
		flvl, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("file level: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: flvl, AddSource: true}))
		closer = f
	}
	if len(handlers) == 1 {
		return slog.New(handlers[0]), closer, nil
	}
	return slog.New(handlers), closer, nil
}

// ParseLevel parses a level name such as "debug" or "WARN".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return l, nil
}

// Reporter adapts evaluator diagnostics into records on logger.
func Reporter(logger *slog.Logger) func(calc.Diagnostic) {
	return func(d calc.Diagnostic) {
		lvl := slog.Level(d.Level)
		ctx := context.Background()
		if !logger.Enabled(ctx, lvl) {
			return
		}
		var ie calc.InputError
		if errors.As(d.Err, &ie) {
			logger.Log(ctx, lvl, d.Msg, "pos", ie.Pos())
			return
		}
		logger.Log(ctx, lvl, d.Msg)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
