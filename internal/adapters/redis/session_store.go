// Package redis provides Redis-based adapters for the rota portal.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srl-logistica/rotaportal/internal/domain/access"
	"github.com/srl-logistica/rotaportal/internal/ports"
)

// sessionKeyPrefix mirrors the storage key name the portal has always used for
// the per-device access record; it must stay stable across versions.
const sessionKeyPrefix = "rotalog_access:"

// SessionStore is a Redis-based per-device access-session store.
// Redis TTL tracks session ExpiresAt, so expired sessions vanish on their own;
// Get double-checks the timestamp and lazily reaps anyway, because the expiry
// decision must never depend on the storage engine honoring TTLs.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: sessionKeyPrefix,
	}
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
	}
}

func (s *SessionStore) Save(ctx context.Context, sess access.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := s.prefix + sess.ID
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		// Session is already expired, don't save it
		return errors.New("session is expired")
	}

	// Set overwrites unconditionally: at most one session per device, and a
	// new redemption replaces whatever was there.
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (access.Session, error) {
	if id == "" {
		return access.Session{}, ErrNotFound
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return access.Session{}, ErrNotFound
		}
		return access.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess access.Session
	if unmarshalErr := json.Unmarshal([]byte(data), &sess); unmarshalErr != nil {
		return access.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Lazy reap: a record past its expiry is treated as absent and removed as
	// a side effect of the read.
	if sess.Expired(time.Now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return access.Session{}, fmt.Errorf("reap expired session: %w", deleteErr)
		}
		return access.Session{}, ErrNotFound
	}

	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}

	key := s.prefix + id
	return s.client.Del(ctx, key).Err()
}

// ErrNotFound aliases the port sentinel so callers holding the concrete store
// can match on either name.
var ErrNotFound = ports.ErrSessionNotFound
