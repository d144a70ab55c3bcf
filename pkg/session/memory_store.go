package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store interface using in-memory storage.
// Sessions are stored as snapshots so callers never share state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Snapshot
	ticker   *time.Ticker
	done     chan struct{}
	stop     sync.Once
}

// NewMemoryStore creates a new in-memory session store.
// A positive cleanupInterval starts a goroutine that drops expired sessions; stop it with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]Snapshot),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Create stores a new session
func (m *MemoryStore) Create(ctx context.Context, session *Session) error {
	if !valid(session) {
		return ErrInvalidSession
	}

	snap := session.Snapshot()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[snap.ID.String()] = snap
	return nil
}

// Get retrieves a session by ID
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	snap, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(snap.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrSessionExpired
	}

	return Restore(snap), nil
}

// Update replaces an existing session
func (m *MemoryStore) Update(ctx context.Context, session *Session) error {
	if !valid(session) {
		return ErrInvalidSession
	}

	snap := session.Snapshot()
	id := snap.ID.String()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return ErrSessionNotFound
	}

	m.sessions[id] = snap
	return nil
}

// Delete removes a session by ID
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
	return nil
}

// DeleteExpired removes all expired sessions
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, snap := range m.sessions {
		if now.After(snap.ExpiresAt) {
			delete(m.sessions, id)
		}
	}

	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup goroutine. Calling it again is a no-op.
func (m *MemoryStore) Close() error {
	if m.ticker == nil {
		return nil
	}
	m.stop.Do(func() {
		m.ticker.Stop()
		close(m.done)
	})
	return nil
}

// cleanupLoop runs periodic cleanup of expired sessions
func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}

func valid(session *Session) bool {
	return session != nil && session.ID != uuid.Nil
}
