// Package ports defines interfaces (hexagonal ports) for access-gate behavior.
// Implementations live in internal/adapters; orchestration in internal/service.
package ports

import (
	"context"
	"errors"

	"github.com/srl-logistica/rotaportal/internal/domain/access"
)

// ErrSessionNotFound is returned by SessionStore.Get when no session exists
// for the given ID, including sessions reaped as expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves per-device access sessions.
type SessionStore interface {
	Save(ctx context.Context, sess access.Session) error

	// Get returns ErrSessionNotFound for missing or expired sessions.
	Get(ctx context.Context, id string) (access.Session, error)

	Delete(ctx context.Context, id string) error
}

// Broadcaster publishes the payload-less cross-view refresh signal. Every
// administrator mutation and every successful redemption publishes; open
// views subscribe and re-read their derived state on receipt.
type Broadcaster interface {
	// Publish emits one refresh signal. The signal carries no payload,
	// only "something changed, re-read".
	Publish(ctx context.Context) error

	// Subscribe returns a channel that receives one element per signal and
	// a cancel function that releases the subscription. The channel is
	// closed after cancellation or when the context ends.
	Subscribe(ctx context.Context) (<-chan struct{}, func(), error)
}
