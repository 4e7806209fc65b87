// Package web provides the JSON HTTP API for comments.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/evcraddock/comments/internal/comment"
	"github.com/evcraddock/comments/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// CommentStore is the set of comment operations the API exposes.
type CommentStore interface {
	Create(ctx context.Context, c comment.Candidate) (*comment.Comment, error)
	GetByID(ctx context.Context, id string) (*comment.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*comment.Comment, error)
	UpdateText(ctx context.Context, id, text string) (*comment.Comment, error)
	Delete(ctx context.Context, id string) error
}

var _ CommentStore = (*comment.Repository)(nil)

// Server is the comments API HTTP server.
type Server struct {
	comments CommentStore
	router   chi.Router
}

// NewServer creates a server backed by the given comment store.
func NewServer(comments CommentStore) *Server {
	s := &Server{
		comments: comments,
		router:   chi.NewRouter(),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(logging.RequestLogger)
	s.router.Use(recoverer)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apiJSON(w, errorResponse{Msg: msgNotFound}, http.StatusNotFound)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apiJSON(w, errorResponse{Msg: "method not allowed"}, http.StatusMethodNotAllowed)
	})

	s.router.Get("/health", s.handleHealth)

	s.router.Post("/api/comments", s.handleCreateComment)
	s.router.Get("/api/comments/{id}", s.handleGetComment)
	s.router.Patch("/api/comments/{id}", s.handlePatchComment)
	s.router.Delete("/api/comments/{id}", s.handleDeleteComment)
	s.router.Get("/api/post/{postId}/comments", s.handleListPostComments)

	return s
}

// recoverer turns a handler panic into the standard 500 response.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			writeError(w, r, fmt.Errorf("panic: %v\n%s", rec, debug.Stack()))
		}()

		next.ServeHTTP(w, r)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	slog.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
