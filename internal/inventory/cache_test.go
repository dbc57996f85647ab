package inventory

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client)
	categoryID := uuid.New()

	mock.ExpectGet(availabilityKey(categoryID)).SetVal("7")

	available, ok := cache.Get(context.Background(), categoryID)

	assert.True(t, ok)
	assert.Equal(t, 7, available)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client)
	categoryID := uuid.New()

	mock.ExpectGet(availabilityKey(categoryID)).RedisNil()

	_, ok := cache.Get(context.Background(), categoryID)

	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_GetGarbageValue(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client)
	categoryID := uuid.New()

	mock.ExpectGet(availabilityKey(categoryID)).SetVal("not-a-number")

	_, ok := cache.Get(context.Background(), categoryID)

	assert.False(t, ok)
}

func TestCache_SetAndInvalidate(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := NewCache(client)
	categoryID := uuid.New()

	mock.ExpectSet(availabilityKey(categoryID), 12, availabilityTTL).SetVal("OK")
	mock.ExpectDel(availabilityKey(categoryID)).SetVal(1)

	cache.Set(context.Background(), categoryID, 12)
	cache.Invalidate(context.Background(), categoryID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCache_NilIsSafe(t *testing.T) {
	var cache *Cache

	_, ok := cache.Get(context.Background(), uuid.New())
	assert.False(t, ok)

	// No panic expected from writes against the nil cache either.
	cache.Set(context.Background(), uuid.New(), 1)
	cache.Invalidate(context.Background(), uuid.New())
}
