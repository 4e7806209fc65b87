package comment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evcraddock/comments/internal/store"
)

// Repository provides CRUD operations for comments.
type Repository struct {
	coll store.Collection
	now  func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock overrides the time source used for createdOn and modifiedOn.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a comment repository over coll.
func NewRepository(coll store.Collection, opts ...Option) *Repository {
	r := &Repository{coll: coll, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create validates c and stores it as a new comment.
func (r *Repository) Create(ctx context.Context, c Candidate) (*Comment, error) {
	fields, err := Validate(c)
	if err != nil {
		return nil, err
	}

	now := r.now().UnixMilli()
	cm := &Comment{
		ID:         r.coll.NewID(),
		Text:       fields.Text,
		Author:     fields.Author,
		PostID:     fields.PostID,
		ReplyToID:  fields.ReplyToID,
		CreatedOn:  now,
		ModifiedOn: now,
	}

	doc, err := r.coll.Insert(ctx, toDocument(cm))
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	return fromDocument(doc)
}

// GetByID returns the comment with the given id. Ids that were never
// issued, whatever their format, yield ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id string) (*Comment, error) {
	doc, err := r.coll.FindOne(ctx, id)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("finding comment %s: %w", id, err)
	}

	return fromDocument(doc)
}

// ListByPost returns all comments on a post in storage order. The result
// is empty, never nil, when the post has none.
func (r *Repository) ListByPost(ctx context.Context, postID int64) ([]*Comment, error) {
	docs, err := r.coll.FindMany(ctx, store.Filter{fieldPostID: postID})
	if err != nil {
		return nil, fmt.Errorf("listing comments for post %d: %w", postID, err)
	}

	comments := make([]*Comment, 0, len(docs))
	for _, doc := range docs {
		c, err := fromDocument(doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, nil
}

// UpdateText replaces a comment's text and advances modifiedOn. It is the
// only mutation a comment supports.
func (r *Repository) UpdateText(ctx context.Context, id, text string) (*Comment, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// modifiedOn must strictly increase even when edits land within the
	// same millisecond.
	modified := r.now().UnixMilli()
	if modified <= current.ModifiedOn {
		modified = current.ModifiedOn + 1
	}

	n, err := r.coll.UpdateOne(ctx, id, store.Document{
		fieldText:       text,
		fieldModifiedOn: modified,
	})
	if err != nil {
		return nil, fmt.Errorf("updating comment %s: %w", id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// Delete removes a comment by ID.
func (r *Repository) Delete(ctx context.Context, id string) error {
	n, err := r.coll.DeleteOne(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting comment %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("comment %s: %w", id, ErrNotFound)
	}

	return nil
}

func toDocument(c *Comment) store.Document {
	doc := store.Document{
		store.IDField:   c.ID,
		fieldText:       c.Text,
		fieldAuthor:     c.Author,
		fieldPostID:     c.PostID,
		fieldCreatedOn:  c.CreatedOn,
		fieldModifiedOn: c.ModifiedOn,
	}
	if c.ReplyToID != "" {
		doc[fieldReplyToID] = c.ReplyToID
	}
	return doc
}

// fromDocument maps the recognized fields of doc; anything else is dropped.
func fromDocument(doc store.Document) (*Comment, error) {
	c := &Comment{ID: doc.ID()}
	if c.ID == "" {
		return nil, fmt.Errorf("decoding comment: missing %s", store.IDField)
	}

	var ok bool
	if c.Text, ok = doc[fieldText].(string); !ok {
		return nil, fmt.Errorf("decoding comment %s: %s is %T, want string", c.ID, fieldText, doc[fieldText])
	}
	if c.Author, ok = doc[fieldAuthor].(string); !ok {
		return nil, fmt.Errorf("decoding comment %s: %s is %T, want string", c.ID, fieldAuthor, doc[fieldAuthor])
	}
	if v, present := doc[fieldReplyToID]; present && v != nil {
		if c.ReplyToID, ok = v.(string); !ok {
			return nil, fmt.Errorf("decoding comment %s: %s is %T, want string", c.ID, fieldReplyToID, v)
		}
	}

	var err error
	if c.PostID, err = store.Int64(doc[fieldPostID]); err != nil {
		return nil, fmt.Errorf("decoding comment %s: %s: %w", c.ID, fieldPostID, err)
	}
	if c.CreatedOn, err = store.Int64(doc[fieldCreatedOn]); err != nil {
		return nil, fmt.Errorf("decoding comment %s: %s: %w", c.ID, fieldCreatedOn, err)
	}
	if c.ModifiedOn, err = store.Int64(doc[fieldModifiedOn]); err != nil {
		return nil, fmt.Errorf("decoding comment %s: %s: %w", c.ID, fieldModifiedOn, err)
	}

	return c, nil
}
