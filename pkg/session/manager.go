package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dmitrymomot/mkit/pkg/logger"
)

// DefaultTTL is the session lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// Manager loads, saves and destroys sessions against a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	log   *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL sets the session lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.log = logger.OrDiscard(l)
	}
}

// NewManager creates a session manager backed by store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		ttl:   DefaultTTL,
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start loads the session with the given ID, or creates a new one when the
// ID is empty, unknown or expired. The flash bag is cycled either way, so
// values flashed by the previous request become readable.
func (m *Manager) Start(ctx context.Context, id string) (*Session, error) {
	if m.store == nil {
		return nil, ErrNoStore
	}

	if id != "" {
		s, err := m.store.Get(ctx, id)
		switch {
		case err == nil:
			s.Touch()
			s.Cycle()
			return s, nil
		case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSessionExpired):
			m.log.DebugContext(ctx, "session not reusable, starting a new one",
				logger.SessionID(id), logger.Error(err))
		default:
			return nil, err
		}
	}

	s := New(m.ttl)
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	m.log.DebugContext(ctx, "session started", logger.SessionID(s.ID.String()))
	return s, nil
}

// Save persists the session, creating it in the store if needed.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if m.store == nil {
		return ErrNoStore
	}
	if !valid(s) {
		return ErrInvalidSession
	}

	err := m.store.Update(ctx, s)
	if errors.Is(err, ErrSessionNotFound) {
		return m.store.Create(ctx, s)
	}
	return err
}

// Destroy removes the session from the store.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	if m.store == nil {
		return ErrNoStore
	}
	if !valid(s) {
		return ErrInvalidSession
	}
	if err := m.store.Delete(ctx, s.ID.String()); err != nil {
		return err
	}
	m.log.DebugContext(ctx, "session destroyed", logger.SessionID(s.ID.String()))
	return nil
}
