package log

import (
	"context"
	"io"
	"log/slog"
	"math/big"

	"github.com/bryanroy/anomalyscan/internal/model"
)

// RatHandler wraps an slog.Handler to render exact rational attribute values
// as "n/d" text. It intercepts log records, rewrites any attribute whose
// value is a *big.Rat, and passes the record to the underlying handler.
//
// Design decision: We use a handler wrapper rather than requiring every
// call site to pre-format rationals because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Call sites stay honest: they log the value they computed, not a string
type RatHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler
}

// NewRatHandler creates a RatHandler wrapping the given handler.
// If handler is nil, slog.Default's handler is used.
func NewRatHandler(handler slog.Handler) *RatHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &RatHandler{handler: handler}
}

// NewLogger builds the standard anomalyscan logger: a text handler on w with
// rational-aware attribute rendering. Verbose enables debug-level records;
// otherwise only warnings and errors pass.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewRatHandler(text))
}

// Enabled delegates to the underlying handler.
func (h *RatHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites rational attributes and passes the record on.
func (h *RatHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added,
// rationals rewritten.
func (h *RatHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &RatHandler{handler: h.handler.WithAttrs(rewritten)}
}

// WithGroup returns a new handler with the given group name.
func (h *RatHandler) WithGroup(name string) slog.Handler {
	return &RatHandler{handler: h.handler.WithGroup(name)}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *RatHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if rat, ok := a.Value.Any().(*big.Rat); ok {
		return slog.String(a.Key, model.FormatHypercharge(rat))
	}
	return a
}
