package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"dataset-uploader/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRunLockDAO_AcquireRelease(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	first := NewRedisRunLockDAO(mockClient, time.Minute)
	second := NewRedisRunLockDAO(mockClient, time.Minute)

	// Act
	ok, err := first.Acquire("dev")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.Acquire("dev")
	require.NoError(t, err)
	assert.False(t, ok, "second run must be refused while the first holds the lock")

	ok, err = second.Acquire("prod")
	require.NoError(t, err)
	assert.True(t, ok, "other domains are independent")

	// Releasing a lock we do not own is a no-op
	require.NoError(t, second.Release("dev"))
	holder, err := first.Holder("dev")
	require.NoError(t, err)
	assert.NotEmpty(t, holder)

	require.NoError(t, first.Release("dev"))
	holder, err = first.Holder("dev")
	require.NoError(t, err)
	assert.Empty(t, holder)

	ok, err = second.Acquire("dev")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisRunLockDAO_ReleaseAfterTakeover(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	mockClient.Now = func() time.Time { return now }

	stale := NewRedisRunLockDAO(mockClient, time.Minute)
	fresh := NewRedisRunLockDAO(mockClient, time.Minute)

	ok, _ := stale.Acquire("dev")
	require.True(t, ok)

	now = now.Add(5 * time.Minute)
	ok, _ = fresh.Acquire("dev")
	require.True(t, ok)

	// The expired owner must not delete the new owner's lock
	require.NoError(t, stale.Release("dev"))
	holder, err := fresh.Holder("dev")
	require.NoError(t, err)
	assert.NotEmpty(t, holder)
}

func TestRedisRunLockDAO_RefreshKeepsSlowRunLocked(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	mockClient.Now = func() time.Time { return now }

	running := NewRedisRunLockDAO(mockClient, time.Minute)
	waiting := NewRedisRunLockDAO(mockClient, time.Minute)

	ok, _ := running.Acquire("dev")
	require.True(t, ok)

	// A row every 40s keeps the lock alive well past the first ttl
	for i := 0; i < 5; i++ {
		now = now.Add(40 * time.Second)
		require.NoError(t, running.Refresh("dev"))
	}

	ok, err := waiting.Acquire("dev")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRunLockDAO_RefreshAfterExpiry(t *testing.T) {
	mockClient := db.NewMockRedisClient(context.Background())
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	mockClient.Now = func() time.Time { return now }

	dao := NewRedisRunLockDAO(mockClient, time.Minute)
	ok, _ := dao.Acquire("dev")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	err := dao.Refresh("dev")
	assert.ErrorIs(t, err, ErrLockLost)

	assert.ErrorIs(t, NewRedisRunLockDAO(mockClient, time.Minute).Refresh("dev"), ErrLockLost)
}

func TestRedisRunLockDAO_HolderReadErrorIsReturned(t *testing.T) {
	dao := NewRedisRunLockDAO(failingGetClient{db.NewMockRedisClient(context.Background())}, time.Minute)

	_, err := dao.Holder("dev")

	assert.ErrorContains(t, err, "connection refused")
}

// failingGetClient fails every Get with a transport error.
type failingGetClient struct {
	*db.MockRedisClient
}

func (failingGetClient) Get(key string) (string, error) {
	return "", errors.New("dial tcp: connection refused")
}
