package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusOK, map[string]string{"status": "healthy"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()

	JSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation message kept",
			code:     http.StatusBadRequest,
			err:      errors.New("page must be a non-negative integer"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "page must be a non-negative integer",
		},
		{
			name:     "internal message hidden",
			code:     http.StatusBadRequest,
			err:      errors.New("dial tcp 10.0.0.1:443: connection refused"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "internal server error",
		},
		{
			name:     "5xx always hidden",
			code:     http.StatusInternalServerError,
			err:      errors.New("invalid template"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
		{
			name:     "app error user message",
			code:     http.StatusInternalServerError,
			err:      fmt.Errorf("render: %w", NewAppError(http.StatusServiceUnavailable, "try again later", errors.New("model down"))),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  "try again later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Message(tt.code, tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestSafeError(t *testing.T) {
	t.Run("nil error writes nothing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusBadRequest, nil)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("writes json error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SafeError(rec, http.StatusBadRequest, errors.New("query is required"))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "query is required", body["error"])
	})
}

func TestAppError(t *testing.T) {
	inner := errors.New("inner")
	appErr := NewAppError(http.StatusBadGateway, "upstream failed", inner)

	assert.Equal(t, "inner", appErr.Error())
	assert.ErrorIs(t, appErr, inner)
	assert.Equal(t, "upstream failed", (&AppError{UserMsg: "upstream failed"}).Error())
}
