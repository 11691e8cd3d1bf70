// Package logger provides structured logging for the application.
//
// It uses the standard library log/slog package to emit JSON logs at a
// configurable level, and carries request-scoped loggers through
// context.Context so that downstream components log with the same
// attributes (trace ID, acting user) as the request that reached them.
package logger
