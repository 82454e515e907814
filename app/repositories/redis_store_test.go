package repositories

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *RedisCommentStore) {
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisCommentStore(client)
}

func TestNewRedisClientRequiresAddress(t *testing.T) {
	client, err := NewRedisClient("", "", 0)
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestRedisCommentStore(t *testing.T) {
	mr, store := setupRedis(t)

	comments, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, comments)

	require.NoError(t, store.Save(sampleComments()))
	assert.True(t, mr.Exists(CommentsKey))

	comments, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, sampleComments(), comments)

	require.NoError(t, store.Clear())
	assert.False(t, mr.Exists(CommentsKey))
}

func TestRedisCommentStoreCorruptValue(t *testing.T) {
	mr, store := setupRedis(t)
	require.NoError(t, mr.Set(CommentsKey, "[{"))

	_, err := store.Load()
	assert.Error(t, err)
}

func TestRedisCommentStoreDropsNullEntries(t *testing.T) {
	mr, store := setupRedis(t)
	require.NoError(t, mr.Set(CommentsKey, `[null,{"id":"c1","author":"Ada","content":"Hello there, nice post","createdAt":"2025-05-01T10:00:00Z"},null]`))

	comments, err := store.Load()
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c1", comments[0].ID)
}

func TestRedisCommentStoreServerDown(t *testing.T) {
	mr, store := setupRedis(t)
	mr.Close()

	_, err := store.Load()
	assert.Error(t, err)
	assert.Error(t, store.Save(sampleComments()))
}
