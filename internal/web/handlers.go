package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/comments/internal/comment"
)

// maxBodyBytes bounds request bodies; comments are short.
const maxBodyBytes = 100 * 1024

type commentResponse struct {
	Comment *comment.Comment `json:"comment"`
}

type commentsResponse struct {
	Comments []*comment.Comment `json:"comments"`
}

type patchRequest struct {
	Text any `json:"text"`
}

// decodeBody decodes a single JSON value, keeping numbers as json.Number so
// the validator can tell numbers from numeric strings. Anything after the
// value other than whitespace is rejected.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return comment.ErrInvalidCommentBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return comment.ErrInvalidCommentBody
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleCreateComment handles POST /api/comments.
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var candidate comment.Candidate
	if err := decodeBody(w, r, &candidate); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := s.comments.Create(r.Context(), candidate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	apiJSON(w, commentResponse{Comment: c}, http.StatusCreated)
}

// handleGetComment handles GET /api/comments/{id}.
func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	c, err := s.comments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	apiJSON(w, commentResponse{Comment: c}, http.StatusOK)
}

// handleListPostComments handles GET /api/post/{postId}/comments. A postId
// that is not an integer matches no comments.
func (s *Server) handleListPostComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postId"), 10, 64)
	if err != nil {
		apiJSON(w, commentsResponse{Comments: []*comment.Comment{}}, http.StatusOK)
		return
	}

	comments, err := s.comments.ListByPost(r.Context(), postID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	apiJSON(w, commentsResponse{Comments: comments}, http.StatusOK)
}

// handlePatchComment handles PATCH /api/comments/{id}. Only text is read
// from the body.
func (s *Server) handlePatchComment(w http.ResponseWriter, r *http.Request) {
	var req patchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	text, err := comment.ValidateText(req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := s.comments.UpdateText(r.Context(), chi.URLParam(r, "id"), text)
	if err != nil {
		writeError(w, r, err)
		return
	}

	apiJSON(w, commentResponse{Comment: c}, http.StatusOK)
}

// handleDeleteComment handles DELETE /api/comments/{id}.
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := s.comments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
