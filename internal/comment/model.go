// Package comment provides the comment domain model, payload validation,
// and the repository that persists comments through a store.Collection.
package comment

// Comment is a remark attached to a post, optionally replying to another
// comment. Timestamps are milliseconds since the Unix epoch.
type Comment struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Author     string `json:"author"`
	PostID     int64  `json:"postId"`
	ReplyToID  string `json:"replyToId,omitempty"`
	CreatedOn  int64  `json:"createdOn"`
	ModifiedOn int64  `json:"modifiedOn"`
}

// Candidate is an unvalidated creation payload. Fields hold whatever the
// JSON decoder produced; decode with UseNumber so numbers arrive as
// json.Number.
type Candidate struct {
	Text      any `json:"text"`
	Author    any `json:"author"`
	PostID    any `json:"postId"`
	ReplyToID any `json:"replyToId"`
}

// NewComment holds the caller-supplied fields of a validated Candidate.
type NewComment struct {
	Text      string
	Author    string
	PostID    int64
	ReplyToID string
}

// Document field names.
const (
	fieldText       = "text"
	fieldAuthor     = "author"
	fieldPostID     = "postId"
	fieldReplyToID  = "replyToId"
	fieldCreatedOn  = "createdOn"
	fieldModifiedOn = "modifiedOn"
)
