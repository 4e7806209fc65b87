package comment

import (
	"encoding/json"

	"github.com/evcraddock/comments/internal/store"
)

// Validate checks that text and author are strings and postId is an
// integral number. A present replyToId must be a string; it is not checked
// against existing comments.
func Validate(c Candidate) (NewComment, error) {
	text, ok := c.Text.(string)
	if !ok {
		return NewComment{}, ErrInvalidCommentBody
	}

	author, ok := c.Author.(string)
	if !ok {
		return NewComment{}, ErrInvalidCommentBody
	}

	postID, ok := number(c.PostID)
	if !ok {
		return NewComment{}, ErrInvalidCommentBody
	}

	var replyTo string
	if c.ReplyToID != nil {
		replyTo, ok = c.ReplyToID.(string)
		if !ok {
			return NewComment{}, ErrInvalidCommentBody
		}
	}

	return NewComment{
		Text:      text,
		Author:    author,
		PostID:    postID,
		ReplyToID: replyTo,
	}, nil
}

// ValidateText checks the text of an edit payload.
func ValidateText(v any) (string, error) {
	text, ok := v.(string)
	if !ok {
		return "", ErrInvalidCommentBody
	}
	return text, nil
}

// number accepts JSON numbers only. json.Number is a string type, so
// plain strings such as "1" are rejected before conversion.
func number(v any) (int64, bool) {
	switch v.(type) {
	case json.Number, float64, int, int32, int64:
		n, err := store.Int64(v)
		return n, err == nil
	default:
		return 0, false
	}
}
