// Package store defines the document collection boundary between the
// comment repository and a concrete storage engine.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// IDField is the key under which every Document exposes the string form of
// the engine's native identifier.
const IDField = "id"

// ErrNoDocument is returned by FindOne when no document has the given id.
var ErrNoDocument = errors.New("no document")

// Document is a single record crossing the adapter boundary.
type Document map[string]any

// ID returns the document's identifier, or "" when it has none.
func (d Document) ID() string {
	id, _ := d[IDField].(string)
	return id
}

// Filter matches documents whose top-level fields equal the given values.
type Filter map[string]any

// Collection is a document collection. Implementations translate their
// native identifier to and from the string IDField on every call.
type Collection interface {
	// NewID returns a fresh native identifier in string form.
	NewID() string

	// Insert stores doc. A document without an id is assigned a fresh native
	// identifier; a caller-supplied id is used verbatim.
	Insert(ctx context.Context, doc Document) (Document, error)

	// FindOne returns ErrNoDocument when nothing matches.
	FindOne(ctx context.Context, id string) (Document, error)

	// FindMany returns matching documents in storage order.
	FindMany(ctx context.Context, filter Filter) ([]Document, error)

	// UpdateOne sets the fields of patch and reports how many documents matched.
	UpdateOne(ctx context.Context, id string, patch Document) (int64, error)

	// DeleteOne reports how many documents were removed.
	DeleteOne(ctx context.Context, id string) (int64, error)

	Close(ctx context.Context) error
}

// Int64 converts a numeric document value to int64. Engines decode numbers
// into different Go types, so callers should not type-assert directly.
func Int64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("parsing number %q: %w", n.String(), err)
		}
		return floatToInt64(f)
	default:
		return 0, fmt.Errorf("unexpected numeric type %T", v)
	}
}

// floatToInt64 accepts integral values within the int64 range, so 1.0 and
// 1e0 convert but 1.5 and 1e300 do not.
func floatToInt64(f float64) (int64, error) {
	if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("non-integral number %v", f)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("number %v out of range", f)
	}
	return int64(f), nil
}
