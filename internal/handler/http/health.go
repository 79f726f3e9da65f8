// Package http provides the operational HTTP surface of the application:
// health endpoints, request metrics and the middleware chain wrapped around
// the page handlers.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// SearchStatus reports the state of the article search client.
type SearchStatus interface {
	Configured() bool
	BreakerOpen() bool
}

// SummarizerStatus reports the state of the lazily loaded model handle.
type SummarizerStatus interface {
	Loaded() bool
	Backend() string
}

// HealthHandler handles health check endpoint requests.
// An open search circuit makes the service unhealthy. A missing API key only
// degrades it, since the pages still render and explain the problem.
// A model that has not been loaded yet is healthy.
type HealthHandler struct {
	Search     SearchStatus
	Summarizer SummarizerStatus
	Version    string
	CSPEnabled bool
}

// ServeHTTP returns 200 unless a check is unhealthy, then 503.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := map[string]CheckStatus{
		"search":     h.checkSearch(),
		"summarizer": h.checkSummarizer(),
		"csp": {
			Status:  StatusHealthy,
			Details: map[string]any{"enabled": h.CSPEnabled},
		},
	}

	status := StatusHealthy
	statusCode := http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case StatusUnhealthy:
			status = StatusUnhealthy
			statusCode = http.StatusServiceUnavailable
		case StatusDegraded:
			if status == StatusHealthy {
				status = StatusDegraded
			}
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) checkSearch() CheckStatus {
	if h.Search == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	details := map[string]any{
		"api_key_configured": h.Search.Configured(),
		"circuit_open":       h.Search.BreakerOpen(),
	}
	switch {
	case h.Search.BreakerOpen():
		return CheckStatus{Status: StatusUnhealthy, Message: "circuit breaker open", Details: details}
	case !h.Search.Configured():
		return CheckStatus{Status: StatusDegraded, Message: "NYT_API_KEY is not set", Details: details}
	default:
		return CheckStatus{Status: StatusHealthy, Details: details}
	}
}

func (h *HealthHandler) checkSummarizer() CheckStatus {
	if h.Summarizer == nil {
		return CheckStatus{Status: StatusUnhealthy, Message: "not configured"}
	}
	return CheckStatus{
		Status: StatusHealthy,
		Details: map[string]any{
			"backend": h.Summarizer.Backend(),
			"loaded":  h.Summarizer.Loaded(),
		},
	}
}

// ReadyHandler handles readiness probe requests.
// The service is not ready while the search circuit breaker is open.
type ReadyHandler struct {
	Search SearchStatus
}

// ServeHTTP returns 200 "ready" or 503.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Search == nil {
		http.Error(w, "search client not configured", http.StatusServiceUnavailable)
		return
	}
	if h.Search.BreakerOpen() {
		http.Error(w, "search circuit breaker open", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Error("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
