package logging

import (
	"context"
	"errors"
	"log/slog"
)

// fanout is a handler that sends each record to every handler that accepts
// its level.
type fanout []slog.Handler

func (h fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, s := range h {
		if s.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (h fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, s := range h {
		if !s.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := make(fanout, len(h))
	for i, s := range h {
		n[i] = s.WithAttrs(attrs)
	}
	return n
}

func (h fanout) WithGroup(name string) slog.Handler {
	n := make(fanout, len(h))
	for i, s := range h {
		n[i] = s.WithGroup(name)
	}
	return n
}
