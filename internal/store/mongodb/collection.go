// Package mongodb adapts a MongoDB collection to store.Collection.
//
// MongoDB keys documents by _id. Documents crossing this adapter expose
// that key as a string id field instead: ObjectIDs are rendered as hex,
// string _id values pass through unchanged.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/evcraddock/comments/internal/store"
)

const nativeIDField = "_id"

// Collection wraps a MongoDB collection.
type Collection struct {
	client *mongo.Client
	coll   *mongo.Collection
}

var _ store.Collection = (*Collection)(nil)

// Connect dials uri, verifies the connection, and returns the named
// collection of database dbName. The returned Collection owns the client.
func Connect(ctx context.Context, uri, dbName, collName string) (*Collection, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		if derr := client.Disconnect(ctx); derr != nil {
			return nil, fmt.Errorf("pinging mongo: %w (also failed to disconnect: %v)", err, derr)
		}
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return New(client, client.Database(dbName).Collection(collName)), nil
}

// New wraps an existing collection.
func New(client *mongo.Client, coll *mongo.Collection) *Collection {
	return &Collection{client: client, coll: coll}
}

// EnsureIndexes creates the secondary index used by per-post listing.
func (c *Collection) EnsureIndexes(ctx context.Context, fields ...string) error {
	for _, f := range fields {
		_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: f, Value: 1}},
		})
		if err != nil {
			return fmt.Errorf("creating index on %s: %w", f, err)
		}
	}
	return nil
}

// NewID returns a fresh ObjectID in hex form.
func (c *Collection) NewID() string {
	return bson.NewObjectID().Hex()
}

// Insert stores doc. Documents without an id get a fresh ObjectID.
func (c *Collection) Insert(ctx context.Context, doc store.Document) (store.Document, error) {
	native := toNative(doc)
	if _, ok := native[nativeIDField]; !ok {
		native[nativeIDField] = bson.NewObjectID()
	}

	if _, err := c.coll.InsertOne(ctx, native); err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}

	return fromNative(native), nil
}

// FindOne returns store.ErrNoDocument when no document has the given id.
func (c *Collection) FindOne(ctx context.Context, id string) (store.Document, error) {
	var native bson.M
	err := c.coll.FindOne(ctx, idFilter(id)).Decode(&native)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("finding document: %w", err)
	}

	return fromNative(native), nil
}

// FindMany returns documents matching filter in natural order.
func (c *Collection) FindMany(ctx context.Context, filter store.Filter) ([]store.Document, error) {
	cur, err := c.coll.Find(ctx, toNativeFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	var natives []bson.M
	if err := cur.All(ctx, &natives); err != nil {
		return nil, fmt.Errorf("reading documents: %w", err)
	}

	docs := make([]store.Document, 0, len(natives))
	for _, n := range natives {
		docs = append(docs, fromNative(n))
	}
	return docs, nil
}

// UpdateOne $sets the fields of patch.
func (c *Collection) UpdateOne(ctx context.Context, id string, patch store.Document) (int64, error) {
	set := toNative(patch)
	delete(set, nativeIDField)

	res, err := c.coll.UpdateOne(ctx, idFilter(id), bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("updating document: %w", err)
	}
	return res.MatchedCount, nil
}

// DeleteOne removes the document with the given id.
func (c *Collection) DeleteOne(ctx context.Context, id string) (int64, error) {
	res, err := c.coll.DeleteOne(ctx, idFilter(id))
	if err != nil {
		return 0, fmt.Errorf("deleting document: %w", err)
	}
	return res.DeletedCount, nil
}

// Close disconnects the client.
func (c *Collection) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting from mongo: %w", err)
	}
	return nil
}

// idFilter matches id stored either verbatim or as the ObjectID it encodes.
// Ids that are not valid hex ObjectIDs are matched as plain strings.
func idFilter(id string) bson.M {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.M{nativeIDField: id}
	}
	return bson.M{nativeIDField: bson.M{"$in": bson.A{id, oid}}}
}

func toNativeFilter(filter store.Filter) bson.M {
	native := bson.M{}
	for k, v := range filter {
		if k == store.IDField {
			if id, ok := v.(string); ok {
				for fk, fv := range idFilter(id) {
					native[fk] = fv
				}
				continue
			}
			native[nativeIDField] = v
			continue
		}
		native[k] = v
	}
	return native
}

func toNative(doc store.Document) bson.M {
	native := make(bson.M, len(doc))
	for k, v := range doc {
		if k == store.IDField {
			if id, ok := v.(string); ok && id != "" {
				native[nativeIDField] = id
			}
			continue
		}
		native[k] = v
	}
	return native
}

// fromNative renames _id and renders every ObjectID as hex, so references
// such as replyToId written by other tools read back as strings.
func fromNative(native bson.M) store.Document {
	doc := make(store.Document, len(native))
	for k, v := range native {
		if k == nativeIDField {
			doc[store.IDField] = nativeIDString(v)
			continue
		}
		if oid, ok := v.(bson.ObjectID); ok {
			doc[k] = oid.Hex()
			continue
		}
		doc[k] = v
	}
	return doc
}

func nativeIDString(v any) string {
	switch id := v.(type) {
	case bson.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}
