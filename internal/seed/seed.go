// Package seed loads fixture comments into a collection.
package seed

import (
	"context"
	"fmt"

	"github.com/evcraddock/comments/internal/store"
)

// fixtures are inserted without ids so the engine assigns native ones.
var fixtures = []store.Document{
	{
		"postId":     int64(1),
		"author":     "barry",
		"text":       "this post is great",
		"createdOn":  int64(1627285881983),
		"modifiedOn": int64(1627285881983),
	},
	{
		"postId":     int64(1),
		"author":     "charlie",
		"text":       "such wow, great post",
		"createdOn":  int64(1627285882000),
		"modifiedOn": int64(1627285882000),
	},
}

// Comments inserts the fixture comments into coll, followed by a reply to
// the first one, and returns the inserted documents in order.
func Comments(ctx context.Context, coll store.Collection) ([]store.Document, error) {
	inserted := make([]store.Document, 0, len(fixtures)+1)
	for _, f := range fixtures {
		doc, err := coll.Insert(ctx, clone(f))
		if err != nil {
			return nil, fmt.Errorf("seeding comment by %s: %w", f["author"], err)
		}
		inserted = append(inserted, doc)
	}

	reply, err := coll.Insert(ctx, store.Document{
		"postId":     int64(1),
		"author":     "charlie",
		"replyToId":  inserted[0].ID(),
		"text":       "great comment barry!",
		"createdOn":  int64(1627287982588),
		"modifiedOn": int64(1627287982588),
	})
	if err != nil {
		return nil, fmt.Errorf("seeding reply: %w", err)
	}

	return append(inserted, reply), nil
}

func clone(doc store.Document) store.Document {
	out := make(store.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
