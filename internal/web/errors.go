package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/evcraddock/comments/internal/comment"
)

const (
	msgBadRequest  = "bad request"
	msgNotFound    = "not found"
	msgServerError = "Server Error"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Msg string `json:"msg"`
}

// classify maps an error to its status code and public message.
func classify(err error) (int, string) {
	switch {
	case comment.IsInvalidBody(err):
		return http.StatusBadRequest, msgBadRequest
	case comment.IsNotFound(err):
		return http.StatusNotFound, msgNotFound
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// writeError responds with the classified status. Unclassified errors are
// logged; their details never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := classify(err)
	if code == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	apiJSON(w, errorResponse{Msg: msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}
