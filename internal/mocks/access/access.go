// Package access contains simple hand-written test doubles for access-gate ports.
// These are lightweight and suitable for unit tests without codegen.
package access

import (
	"context"
	"errors"
	"sync"

	domainaccess "github.com/srl-logistica/rotaportal/internal/domain/access"
	"github.com/srl-logistica/rotaportal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.Broadcaster  = (*MemoryBroadcaster)(nil)
)

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainaccess.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainaccess.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainaccess.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainaccess.Session, error) {
	if id == "" {
		return domainaccess.Session{}, ErrNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainaccess.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports how many sessions are currently stored.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound aliases the port sentinel used by the real store.
var ErrNotFound = ports.ErrSessionNotFound

// MemoryBroadcaster records refresh signals and fans them out to in-process
// subscribers. PublishErr, when set, is returned from Publish to exercise
// best-effort broadcast paths.
type MemoryBroadcaster struct {
	PublishErr error

	mu        sync.Mutex
	published int
	subs      []chan struct{}
}

// NewMemoryBroadcaster creates a new in-memory broadcaster.
func NewMemoryBroadcaster() *MemoryBroadcaster {
	return &MemoryBroadcaster{}
}

func (b *MemoryBroadcaster) Publish(_ context.Context) error {
	if b.PublishErr != nil {
		return b.PublishErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published++
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default: // subscriber is behind, signal already pending
		}
	}
	return nil
}

func (b *MemoryBroadcaster) Subscribe(_ context.Context) (<-chan struct{}, func(), error) {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			for i, sub := range b.subs {
				if sub == ch {
					b.subs = append(b.subs[:i], b.subs[i+1:]...)
					break
				}
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}

// Published reports how many refresh signals were emitted.
func (b *MemoryBroadcaster) Published() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.published
}
