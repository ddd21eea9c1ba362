package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srl-logistica/rotaportal/internal/domain/access"
	"github.com/srl-logistica/rotaportal/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := access.Session{
		ID:            "test-session-1",
		ActivatedCode: "ROTA1A2B3C",
		ExpiresAt:     time.Now().Add(6 * time.Hour),
	}

	err := store.Save(ctx, session)
	require.NoError(t, err)

	retrieved, err := store.Get(ctx, "test-session-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, retrieved.ID)
	assert.Equal(t, session.ActivatedCode, retrieved.ActivatedCode)
	assert.WithinDuration(t, session.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetNonExistent(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "non-existent")
	assert.Equal(t, ErrNotFound, err)
}

func TestSessionStore_Save_RejectsEmptyIDAndExpired(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	err := store.Save(ctx, access.Session{ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)

	err = store.Save(ctx, access.Session{
		ID:        "already-over",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	require.Error(t, err)
}

func TestSessionStore_Save_OverwritesExistingSession(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	first := access.Session{
		ID:            "device-session",
		ActivatedCode: "ROTA111111",
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, first))

	second := access.Session{
		ID:            "device-session",
		ActivatedCode: "ROTA222222",
		ExpiresAt:     time.Now().Add(2 * time.Hour),
	}
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Get(ctx, "device-session")
	require.NoError(t, err)
	assert.Equal(t, "ROTA222222", got.ActivatedCode)
}

func TestSessionStore_Get_ReapsExpiredRecord(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	// Write a record whose stored timestamp is already past while its Redis
	// TTL is still generous, simulating a store that does not honor TTLs.
	sess := access.Session{
		ID:            "stale-session",
		ActivatedCode: "ROTA1A2B3C",
		ExpiresAt:     time.Now().Add(50 * time.Millisecond),
	}
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, client.Expire(ctx, sessionKeyPrefix+"stale-session", time.Hour).Err())

	time.Sleep(100 * time.Millisecond)

	_, err := store.Get(ctx, "stale-session")
	assert.Equal(t, ErrNotFound, err)

	// reaped as a side effect of the read
	exists, err := client.Exists(ctx, sessionKeyPrefix+"stale-session").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestSessionStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewSessionStore(client)
	ctx := context.Background()

	session := access.Session{
		ID:            "test-session-delete",
		ActivatedCode: "ROTA1A2B3C",
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, session))

	require.NoError(t, store.Delete(ctx, "test-session-delete"))

	_, err := store.Get(ctx, "test-session-delete")
	assert.Equal(t, ErrNotFound, err)

	// deleting an absent session is a no-op
	require.NoError(t, store.Delete(ctx, "test-session-delete"))
	require.NoError(t, store.Delete(ctx, ""))
}
