// Package client provides an HTTP client for the comments REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/evcraddock/comments/internal/comment"
)

// Client is an HTTP client for the comments API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Msg, e.StatusCode)
}

// CreateRequest is the body of POST /api/comments.
type CreateRequest struct {
	Text      string `json:"text"`
	Author    string `json:"author"`
	PostID    int64  `json:"postId"`
	ReplyToID string `json:"replyToId,omitempty"`
}

type commentEnvelope struct {
	Comment *comment.Comment `json:"comment"`
}

type commentsEnvelope struct {
	Comments []*comment.Comment `json:"comments"`
}

// CreateComment adds a comment to a post.
func (c *Client) CreateComment(ctx context.Context, req CreateRequest) (*comment.Comment, error) {
	var resp commentEnvelope
	if err := c.send(ctx, http.MethodPost, "/api/comments", req, &resp); err != nil {
		return nil, err
	}
	return resp.Comment, nil
}

// GetComment returns a single comment.
func (c *Client) GetComment(ctx context.Context, id string) (*comment.Comment, error) {
	var resp commentEnvelope
	if err := c.send(ctx, http.MethodGet, commentPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comment, nil
}

// ListPostComments returns the comments on a post.
func (c *Client) ListPostComments(ctx context.Context, postID int64) ([]*comment.Comment, error) {
	var resp commentsEnvelope
	if err := c.send(ctx, http.MethodGet, fmt.Sprintf("/api/post/%d/comments", postID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// EditComment replaces a comment's text.
func (c *Client) EditComment(ctx context.Context, id, text string) (*comment.Comment, error) {
	body := map[string]string{"text": text}
	var resp commentEnvelope
	if err := c.send(ctx, http.MethodPatch, commentPath(id), body, &resp); err != nil {
		return nil, err
	}
	return resp.Comment, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, commentPath(id), nil, nil)
}

func commentPath(id string) string {
	return "/api/comments/" + url.PathEscape(id)
}

// send performs a request with an optional JSON body and decodes the response.
func (c *Client) send(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, result)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(respBody, &errResp) != nil || errResp.Msg == "" {
			errResp.Msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Msg: errResp.Msg}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
