package session

import "context"

// Store defines the interface for session persistence
type Store interface {
	// Create stores a new session
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*Session, error)

	// Update replaces an existing session
	Update(ctx context.Context, session *Session) error

	// Delete removes a session by ID
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes all expired sessions
	DeleteExpired(ctx context.Context) error
}
