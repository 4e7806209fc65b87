package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/evcraddock/comments/internal/store"
)

const (
	tableDocuments   = "documents"
	columnSeq        = "seq"
	columnCollection = "collection"
	columnID         = "id"
	columnBody       = "body"
)

// fieldName restricts filter keys to plain top-level JSON members, since
// they become json_extract paths.
var fieldName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Collection is a named document collection in the documents table.
type Collection struct {
	db   *sql.DB
	name string
}

var _ store.Collection = (*Collection)(nil)

// NewCollection returns the named collection. The collection takes
// ownership of db and closes it on Close.
func NewCollection(db *sql.DB, name string) *Collection {
	return &Collection{db: db, name: name}
}

// NewID returns a random UUID, the native identifier of this engine.
func (c *Collection) NewID() string {
	return uuid.NewString()
}

// Insert stores doc and returns it as persisted.
func (c *Collection) Insert(ctx context.Context, doc store.Document) (store.Document, error) {
	id := doc.ID()
	if id == "" {
		id = c.NewID()
	}

	body, err := encodeBody(doc)
	if err != nil {
		return nil, err
	}

	q := sq.Insert(tableDocuments).
		Columns(columnCollection, columnID, columnBody).
		Values(c.name, id, string(body)).
		RunWith(c.db)

	if _, err := q.ExecContext(ctx); err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}

	return decodeBody(id, body)
}

// FindOne returns the document with the given id.
func (c *Collection) FindOne(ctx context.Context, id string) (store.Document, error) {
	q := sq.Select(columnBody).
		From(tableDocuments).
		Where(c.match(id)).
		RunWith(c.db)

	var body []byte
	err := q.QueryRowContext(ctx).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("finding document: %w", err)
	}

	return decodeBody(id, body)
}

// FindMany returns documents matching every field of filter, in insertion order.
func (c *Collection) FindMany(ctx context.Context, filter store.Filter) ([]store.Document, error) {
	q, err := c.selectQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := q.RunWith(c.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.ErrorContext(ctx, "closing rows", "error", closeErr)
		}
	}()

	docs := make([]store.Document, 0)
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}

		doc, err := decodeBody(id, body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

func (c *Collection) selectQuery(filter store.Filter) (sq.SelectBuilder, error) {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := sq.And{sq.Eq{columnCollection: c.name}}
	for _, k := range keys {
		switch {
		case k == store.IDField:
			conds = append(conds, sq.Eq{columnID: filter[k]})
		case fieldName.MatchString(k):
			conds = append(conds, sq.Expr("json_extract("+columnBody+", ?) = ?", "$."+k, filter[k]))
		default:
			return sq.SelectBuilder{}, fmt.Errorf("unsupported filter field %q", k)
		}
	}

	return sq.Select(columnID, columnBody).
		From(tableDocuments).
		Where(conds).
		OrderBy(columnSeq), nil
}

// UpdateOne merges patch into the stored document.
func (c *Collection) UpdateOne(ctx context.Context, id string, patch store.Document) (int64, error) {
	body, err := encodeBody(patch)
	if err != nil {
		return 0, err
	}

	q := sq.Update(tableDocuments).
		Set(columnBody, sq.Expr("json_patch("+columnBody+", ?)", string(body))).
		Where(c.match(id)).
		RunWith(c.db)

	result, err := q.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("updating document: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

// DeleteOne removes the document with the given id.
func (c *Collection) DeleteOne(ctx context.Context, id string) (int64, error) {
	q := sq.Delete(tableDocuments).
		Where(c.match(id)).
		RunWith(c.db)

	result, err := q.ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting document: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return n, nil
}

func (c *Collection) match(id string) sq.Eq {
	return sq.Eq{columnCollection: c.name, columnID: id}
}

// Close closes the underlying database.
func (c *Collection) Close(_ context.Context) error {
	return c.db.Close()
}

// encodeBody marshals doc without its id; the id lives in its own column.
func encodeBody(doc store.Document) ([]byte, error) {
	fields := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == store.IDField {
			continue
		}
		fields[k] = v
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return body, nil
}

func decodeBody(id string, body []byte) (store.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	doc := store.Document{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", id, err)
	}
	doc[store.IDField] = id
	return doc, nil
}
