package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewID(t *testing.T) {
	first, err := NewID()
	require.NoError(t, err)
	second, err := NewID()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Less(t, first, second, "ids must sort in creation order")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "post:p1", string(postKey("p1")))
	assert.Equal(t, "comment:p1:c1", string(commentKey("p1", "c1")))
	assert.Equal(t, "comment:p1:", string(commentPostPrefix("p1")))
}

func TestMarshalEntity(t *testing.T) {
	type entity struct {
		Name string `json:"name"`
	}

	data, err := marshalEntity(entity{Name: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x"}`, string(data))

	var out entity
	require.NoError(t, unmarshalEntity(data, &out))
	assert.Equal(t, "x", out.Name)

	assert.Error(t, unmarshalEntity([]byte("{"), &out))
}

func TestStoreCloseIsIdempotent(t *testing.T) {
	store, err := OpenBadger("")
	require.NoError(t, err)

	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}

func TestOpenBadgerOnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenBadger(dir)
	require.NoError(t, err)
	post := newPost("Persisted", true)
	require.NoError(t, store.Posts.Create(ctx, post))
	require.NoError(t, store.Close())

	reopened, err := OpenBadger(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.Title)
}
