// Package tracing provides OpenTelemetry tracing integration: tracer provider
// setup for the server process, an HTTP middleware that opens one server span
// per request, and the tracer used for spans inside the digest pipeline.
package tracing
