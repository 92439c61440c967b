// Package logging is the structured-logging seam of the account service.
// The HTTP layer logs one line per request through it, and the app
// wiring logs lifecycle events; production uses a slog JSON backend
// while tests plug in buffered handlers.
package logging

import "context"

// Logger is the contract the service components log through. The
// variadic args are key-value pairs:
//
//	log.Info(ctx, "request", "method", "POST", "path", "/users/login")
type Logger interface {
	// Info records normal operation (request lines, startup, shutdown).
	Info(ctx context.Context, msg string, args ...any)

	// Warn records unusual but recoverable conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error records failures that surfaced as internal-error responses.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a logger that stamps every line with the given pairs,
	// e.g. With("component", "httpapi").
	With(args ...any) Logger
}
