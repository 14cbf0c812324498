package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"inkpost/app/models"
	"inkpost/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func newTestStore(t *testing.T) *repositories.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	store, err := Open(ctx, SQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newPost(title string, published bool) *models.Post {
	return &models.Post{
		Name:      "Alice",
		Title:     title,
		Text:      "Body of " + title,
		Date:      "Oct 18, 2026",
		Published: published,
	}
}

func newComment(postID, text string) *models.Comment {
	return &models.Comment{Name: "Bob", Text: text, Date: "Oct 18, 2026", Post: postID}
}

func TestRebind(t *testing.T) {
	query := "SELECT a FROM t WHERE b = ? AND c = ?"
	assert.Equal(t, query, SQLite.rebind(query))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", Postgres.rebind(query))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("SQLite")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	d, err = ParseDialect("postgresql")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	_, err = ParseDialect("mongo")
	assert.Error(t, err)
}

func TestMigrateIsRepeatable(t *testing.T) {
	store := newTestStore(t)
	db := store.Posts.(*PostRepository).db
	assert.NoError(t, Migrate(db, SQLite))
}

func TestPostRepository(t *testing.T) {
	repo := newTestStore(t).Posts

	post := newPost("First", true)
	require.NoError(t, repo.Create(ctx, post))
	assert.NotEmpty(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post, got)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	draft := newPost("Draft", false)
	require.NoError(t, repo.Create(ctx, draft))
	require.NoError(t, repo.Create(ctx, newPost("Second", true)))

	published, err := repo.ListByPublished(ctx, true)
	require.NoError(t, err)
	require.Len(t, published, 2)
	assert.Equal(t, "First", published[0].Title)
	assert.Equal(t, "Second", published[1].Title)

	drafts, err := repo.ListByPublished(ctx, false)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.False(t, drafts[0].Published)

	draft.Title = "Edited"
	draft.Published = true
	require.NoError(t, repo.Update(ctx, draft))
	got, err = repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)
	assert.True(t, got.Published)

	ghost := newPost("Ghost", true)
	ghost.ID = "missing"
	assert.ErrorIs(t, repo.Update(ctx, ghost), repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, post.ID))
	assert.ErrorIs(t, repo.Delete(ctx, post.ID), repositories.ErrNotFound)

	assert.Error(t, repo.Create(ctx, newPost("", true)))
}

func TestCommentRepository(t *testing.T) {
	repo := newTestStore(t).Comments

	first := newComment("p1", "one")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, newComment("p1", "two")))
	require.NoError(t, repo.Create(ctx, newComment("p2", "three")))

	byPost, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byPost, 2)
	assert.Equal(t, first, byPost[0])

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), repositories.ErrNotFound)

	n, err := repo.DeleteByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "p2", remaining[0].Post)
}
