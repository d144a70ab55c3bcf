package auth

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/mkit/pkg/logger"
	"github.com/dmitrymomot/mkit/pkg/session"
)

// DefaultSessionKey is the session key holding the logged-in user.
const DefaultSessionKey = "user"

// User is the identity stored in the session on login.
// Only the bcrypt hash of the password is kept.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"-"`
}

// Basic is a minimal session-backed authentication layer.
// Logging out clears the user but keeps the session alive.
type Basic struct {
	session    *session.Session
	key        string
	bcryptCost int
	log        *slog.Logger
}

// Option configures Basic.
type Option func(*Basic)

// WithSessionKey overrides the session key used to store the user.
func WithSessionKey(key string) Option {
	return func(b *Basic) {
		if key != "" {
			b.key = key
		}
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing
func WithBcryptCost(cost int) Option {
	return func(b *Basic) {
		b.bcryptCost = cost
	}
}

// WithLogger sets the logger for login and logout events.
func WithLogger(l *slog.Logger) Option {
	return func(b *Basic) {
		b.log = logger.OrDiscard(l)
	}
}

// NewBasic creates an authentication layer over s.
func NewBasic(s *session.Session, opts ...Option) *Basic {
	b := &Basic{
		session:    s,
		key:        DefaultSessionKey,
		bcryptCost: bcrypt.DefaultCost,
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// IsLoggedIn reports whether a user is stored in the session.
func (b *Basic) IsLoggedIn() bool {
	_, ok := b.User()
	return ok
}

// IsGuest is the negation of IsLoggedIn.
func (b *Basic) IsGuest() bool {
	return !b.IsLoggedIn()
}

// User returns the logged-in user.
func (b *Basic) User() (User, bool) {
	if b.session == nil {
		return User{}, false
	}
	v, ok := b.session.Get(b.key)
	if !ok {
		return User{}, false
	}
	u, ok := v.(User)
	if !ok || u.ID == "" {
		return User{}, false
	}
	return u, true
}

// Login hashes password and stores the user in the session,
// replacing any user already logged in.
func (b *Basic) Login(id, name, password string) error {
	if b.session == nil {
		return ErrNoSession
	}
	if id == "" {
		return ErrEmptyUserID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	b.session.Set(b.key, User{ID: id, Name: name, PasswordHash: hash})
	b.log.Debug("user logged in",
		logger.Component("auth"),
		slog.String("user_id", id),
		logger.SessionID(b.session.ID.String()),
	)
	return nil
}

// Verify checks password against the logged-in user's hash.
func (b *Basic) Verify(password string) error {
	u, ok := b.User()
	if !ok {
		return ErrNotLoggedIn
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Logout removes the user from the session without destroying it.
func (b *Basic) Logout() *Basic {
	if b.session == nil {
		return b
	}
	b.session.Clear(b.key)
	b.log.Debug("user logged out",
		logger.Component("auth"),
		logger.SessionID(b.session.ID.String()),
	)
	return b
}
