package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		expectedLevel  string
		expectedStatus int
	}{
		{name: "2xx as INFO", expectedStatus: http.StatusOK, expectedLevel: "INFO"},
		{name: "4xx as WARN", expectedStatus: http.StatusNotFound, expectedLevel: "WARN"},
		{name: "5xx as ERROR", expectedStatus: http.StatusInternalServerError, expectedLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuf strings.Builder
			logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			handler := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.expectedStatus)
			}))

			req := httptest.NewRequest(http.MethodGet, "/user/search/go", nil)
			req.Header.Set("Authorization", "Bearer secret-token")
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			logOutput := logBuf.String()
			assert.Contains(t, logOutput, "level="+tt.expectedLevel)
			assert.Contains(t, logOutput, "/user/search/go")
			assert.NotContains(t, logOutput, "secret-token", "tokens must never be logged")
		})
	}
}

func TestLoggingMiddleware_CapturesResponseMetrics(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := RequestIDMiddleware()(LoggingMiddleware(logger)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "duration_ms")
	assert.Contains(t, logOutput, "bytes_written=2")
	assert.Contains(t, logOutput, "status=200")
	assert.Contains(t, logOutput, "request_id=req-42")
}

func TestLoggingWithSkip(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	handler := LoggingWithSkip(logger, []string{"/health", "/ping"})(okHandler())

	t.Run("Skipped path should not be logged", func(t *testing.T) {
		logBuf.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, logBuf.String())
	})

	t.Run("Non-skipped path should be logged", func(t *testing.T) {
		logBuf.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, logBuf.String(), "HTTP request")
	})
}

func TestStatusRecorder(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	assert.Equal(t, slog.LevelInfo, rec.level())

	rec.WriteHeader(http.StatusCreated)
	n, err := rec.Write([]byte("Hello, World!"))
	require.NoError(t, err)

	assert.Equal(t, 13, n)
	assert.Equal(t, http.StatusCreated, rec.status)
	assert.Equal(t, int64(13), rec.written)
	assert.Equal(t, w, rec.Unwrap())

	rec.status = http.StatusConflict
	assert.Equal(t, slog.LevelWarn, rec.level())
	rec.status = http.StatusServiceUnavailable
	assert.Equal(t, slog.LevelError, rec.level())
}

func TestLoggingMiddleware_RoutePattern(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}/tags", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	LoggingMiddleware(logger)(mux).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/42/tags", nil))

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "path=/users/42/tags")
	assert.Contains(t, logOutput, `route="GET /users/{id}/tags"`)
}
