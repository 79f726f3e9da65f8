// Package respond provides utilities for sending HTTP responses.
// JSON is used by the operational endpoints; HTML pages are rendered by the
// digest handlers. Error helpers sanitize messages before they leave the process.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// AppError is an error type that carries a user-facing message.
type AppError struct {
	UserMsg string // Message to display to users
	Err     error  // Internal error (logged for debugging)
	Code    int    // HTTP status code
}

// Error returns the error message, implementing the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

// Unwrap returns the underlying error, implementing the errors.Unwrap interface.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given parameters.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// safeFragments mark messages that describe user input rather than internals.
var safeFragments = []string{
	"required",
	"invalid",
	"must be",
	"cannot be",
	"too long",
}

// Message returns the status code and user-facing text for err.
// AppErrors supply both. Other errors keep their text only when it reads as a
// validation message and code is below 500; anything else becomes a generic
// message and is logged with secrets masked.
func Message(code int, err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			slog.Default().Error("application error",
				slog.Int("code", appErr.Code),
				slog.String("user_message", appErr.UserMsg),
				slog.String("error", SanitizeError(appErr.Err)))
		}
		return appErr.Code, appErr.UserMsg
	}

	msg := err.Error()
	if code < http.StatusInternalServerError {
		lower := strings.ToLower(msg)
		for _, frag := range safeFragments {
			if strings.Contains(lower, frag) {
				return code, msg
			}
		}
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	return code, "internal server error"
}

// SafeError writes err as a JSON error body using Message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	code, msg := Message(code, err)
	JSON(w, code, map[string]string{"error": msg})
}
