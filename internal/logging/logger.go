// Package logging defines the minimal structured-logging facade used across
// the KUDI client. Components receive a Logger and never talk to a concrete
// logging backend directly.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// interpreted as key-value pairs:
//
//	log.Info(ctx, "claim accepted", "kind", kind, "ep", granted)
type Logger interface {
	// Debug logs fine-grained protocol detail (request retries, resyncs).
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs an unusual but non-fatal condition.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key-value
	// pairs.
	With(args ...any) Logger
}
