// Package logging provides structured logging utilities with context propagation.
//
// Loggers are log/slog loggers configured from the observability section of
// the server configuration. Request-scoped loggers carry the request ID set
// by the requestid middleware.
//
// Example usage:
//
//	logger := logging.New(logging.Options{Level: "debug"})
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, logging.FromContext(ctx)).Info("searching")
//	}
package logging
