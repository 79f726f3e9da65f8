// Package observability groups the logging, metrics and tracing support used
// by the server.
//
// Subpackages:
//   - logging: structured logging with slog and request-scoped loggers
//   - metrics: Prometheus business metrics for search and summarization
//   - tracing: OpenTelemetry tracer setup and HTTP middleware
package observability
