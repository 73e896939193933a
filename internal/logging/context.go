package logging

import (
	"context"
	"io"
	"log/slog"
)

type ctxKey struct{}

var discard Logger = NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

// NewContext returns a copy of ctx carrying l.
func NewContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored by NewContext, or fallback when
// there is none. A nil fallback yields a logger that drops everything.
func FromContext(ctx context.Context, fallback Logger) Logger {
	if l, ok := ctx.Value(ctxKey{}).(Logger); ok && l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return discard
}
