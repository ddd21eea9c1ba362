package access

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainaccess "github.com/srl-logistica/rotaportal/internal/domain/access"
)

func TestMemorySessionStore_RoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := domainaccess.Session{
		ID:            "sess-1",
		ActivatedCode: "ROTA1A2B3C",
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.Equal(t, ErrNotFound, err)
	assert.Zero(t, store.Len())
}

func TestMemorySessionStore_EdgeInputs(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.Error(t, store.Save(ctx, domainaccess.Session{}))

	_, err := store.Get(ctx, "")
	assert.Equal(t, ErrNotFound, err)

	// deleting nothing is fine
	require.NoError(t, store.Delete(ctx, ""))
	require.NoError(t, store.Delete(ctx, "never-saved"))
}

func TestMemoryBroadcaster_PublishCountsAndFansOut(t *testing.T) {
	b := NewMemoryBroadcaster()
	ctx := context.Background()

	ch, cancel, err := b.Subscribe(ctx)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, b.Publish(ctx))
	require.NoError(t, b.Publish(ctx))
	assert.Equal(t, 2, b.Published())

	// burst coalesces to one pending signal per subscriber
	select {
	case <-ch:
	default:
		t.Fatal("expected a pending refresh signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should coalesce while the receiver is idle")
	default:
	}
}

func TestMemoryBroadcaster_PublishErr(t *testing.T) {
	b := NewMemoryBroadcaster()
	b.PublishErr = errors.New("redis down")

	err := b.Publish(context.Background())
	require.Error(t, err)
	assert.Zero(t, b.Published())
}

func TestMemoryBroadcaster_CancelRemovesSubscriber(t *testing.T) {
	b := NewMemoryBroadcaster()
	ctx := context.Background()

	ch, cancel, err := b.Subscribe(ctx)
	require.NoError(t, err)

	cancel()
	cancel() // idempotent

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after cancel")

	require.NoError(t, b.Publish(ctx))
	assert.Equal(t, 1, b.Published())
}
