// Package logctx is a thin context-carried slog wrapper, mirroring the way
// the teacher's own d2gridrouter package logs ("oss.terrastruct.com/d2/lib/log",
// called as log.Debug(ctx, msg, attrs...)). The layout engine is a library
// embedded in a VS Code extension host, so it never configures its own
// handler — it only ever reads a *slog.Logger that the caller attached to
// ctx, falling back to slog.Default() when none was attached.
package logctx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With returns a new context carrying l as the active logger.
func With(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func from(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// Debug logs a debug-level diagnostic. The layout engine uses this for
// recoverable per-edge/per-port failures (§7): non-orthogonal routes
// dropped, disconnected hyperedges, missing router context.
func Debug(ctx context.Context, msg string, args ...any) {
	from(ctx).Debug(msg, args...)
}

// Warn logs a warning-level diagnostic, used for conditions §7 calls out as
// "log warning" (e.g. an unknown owning node after routing).
func Warn(ctx context.Context, msg string, args ...any) {
	from(ctx).Warn(msg, args...)
}

// Error logs an error-level diagnostic for input-malformed failures that are
// about to abort the call.
func Error(ctx context.Context, msg string, args ...any) {
	from(ctx).Error(msg, args...)
}
