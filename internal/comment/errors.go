package comment

import "errors"

var (
	// ErrInvalidCommentBody reports a payload with missing or mistyped fields.
	ErrInvalidCommentBody = errors.New("bad comment body")

	// ErrNotFound reports that no comment has the requested id.
	ErrNotFound = errors.New("not found")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidBody reports whether err is or wraps ErrInvalidCommentBody.
func IsInvalidBody(err error) bool {
	return errors.Is(err, ErrInvalidCommentBody)
}
