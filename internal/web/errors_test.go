package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evcraddock/comments/internal/comment"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid body", comment.ErrInvalidCommentBody, http.StatusBadRequest, "bad request"},
		{"wrapped not found", fmt.Errorf("comment 17: %w", comment.ErrNotFound), http.StatusNotFound, "not found"},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError, "Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestWriteErrorLogsOnlyServerErrors(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	r := httptest.NewRequest(http.MethodGet, "/api/comments/x", nil)

	writeError(httptest.NewRecorder(), r, comment.ErrNotFound)
	assert.Zero(t, buf.Len())

	w := httptest.NewRecorder()
	writeError(w, r, errors.New("secret dsn leaked"))
	assert.Contains(t, buf.String(), "secret dsn leaked")
	assert.NotContains(t, w.Body.String(), "secret")
	assert.JSONEq(t, `{"msg":"Server Error"}`, w.Body.String())
}
