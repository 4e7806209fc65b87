package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/comments/internal/comment"
	"github.com/evcraddock/comments/internal/store"
	"github.com/evcraddock/comments/internal/store/sqlite"
)

func TestComments(t *testing.T) {
	coll, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "seed.db"), "comments")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, coll.Close(context.Background()))
	})
	ctx := context.Background()

	docs, err := Comments(ctx, coll)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for _, doc := range docs {
		assert.NotEmpty(t, doc.ID())
	}
	assert.Equal(t, docs[0].ID(), docs[2]["replyToId"])

	comments, err := comment.NewRepository(coll).ListByPost(ctx, 1)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "barry", comments[0].Author)
	assert.Equal(t, comments[0].ID, comments[2].ReplyToID)
	assert.LessOrEqual(t, comments[2].CreatedOn, comments[2].ModifiedOn)
}

func TestCommentsDoesNotMutateFixtures(t *testing.T) {
	coll, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "seed.db"), "comments")
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, coll.Close(context.Background()))
	})

	_, err = Comments(context.Background(), coll)
	require.NoError(t, err)

	for _, f := range fixtures {
		_, hasID := f[store.IDField]
		assert.False(t, hasID)
	}
}
