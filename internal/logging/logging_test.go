package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureDefault routes the default logger into a buffer for one test.
func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestSetupDevMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	Setup(&buf, Options{Dev: true})

	slog.Debug("test debug")
	slog.Info("test info")

	assert.Contains(t, buf.String(), "test debug")
	assert.Contains(t, buf.String(), "test info")
}

func TestSetupProdMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	Setup(&buf, Options{})

	slog.Debug("hidden")
	slog.Info("prod test", "key", "value")

	assert.NotContains(t, buf.String(), "hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "prod test", line["msg"])
	assert.Equal(t, "value", line["key"])
}

func TestSetupAttachesVersionAndEnv(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	logger := Setup(&buf, Options{Version: "1.2.3", Env: "production"})
	assert.Same(t, logger, slog.Default())

	slog.Info("started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "1.2.3", line["version"])
	assert.Equal(t, "production", line["env"])
}

func TestRequestLoggerImplicitStatus(t *testing.T) {
	buf := captureDefault(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/post/1/comments", nil)
	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, req)

	out := buf.String()
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "bytes=5")
	assert.Equal(t, "hello", rec.Body.String())
}

func TestRequestLogger(t *testing.T) {
	buf := captureDefault(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/comments", nil)
	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, req)

	out := buf.String()
	assert.Contains(t, out, "POST")
	assert.Contains(t, out, "/api/comments")
	assert.Contains(t, out, "status=201")
	assert.Contains(t, out, "level=INFO")
}

func TestRequestLoggerIncludesRequestID(t *testing.T) {
	buf := captureDefault(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/comments/abc", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	middleware.RequestID(RequestLogger(inner)).ServeHTTP(rec, req)

	assert.Contains(t, buf.String(), "request_id=req-42")
}

func TestRequestLoggerSkipsHealth(t *testing.T) {
	buf := captureDefault(t)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	RequestLogger(inner).ServeHTTP(rec, req)

	assert.Zero(t, buf.Len(), "expected no log for /health path")
}

func TestRequestLoggerLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusNoContent, "level=INFO"},
		{http.StatusNotFound, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			buf := captureDefault(t)

			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			req := httptest.NewRequest(http.MethodGet, "/missing", nil)
			rec := httptest.NewRecorder()
			RequestLogger(inner).ServeHTTP(rec, req)

			assert.Contains(t, buf.String(), tt.level)
		})
	}
}
