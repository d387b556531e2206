// Package pkglog contains logging helpers used across the application.
//
// It is built around slog and keeps logs consistent by:
//   - Initializing a JSON handler with stable keys.
//   - Carrying request-scoped Fields in the context and merging them into
//     every record logged with that context.
//   - Attaching the correlation ID and the trace context (when present).
//
// Code that wants request attributes on its logs only has to log with the
// request's context (slog.InfoContext and friends).
package pkglog
