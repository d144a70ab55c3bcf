package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mkit/pkg/collection"
)

// Session is a per-visitor data bag with flash messages and a CSRF token.
//
// Flash values set during one request are readable during the next: Flash
// writes to the "next" bag and Cycle, run by Manager.Start, promotes it to
// the current bag read by Flashed.
type Session struct {
	ID             uuid.UUID
	ExpiresAt      time.Time
	LastActivityAt time.Time
	CreatedAt      time.Time

	data      *collection.Collection[any]
	flashed   *collection.Collection[any]
	flashNext *collection.Collection[any]

	mu    sync.Mutex
	token string
}

// New creates an empty session that expires after ttl.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
		data:           collection.New[any](nil),
		flashed:        collection.New[any](nil),
		flashNext:      collection.New[any](nil),
	}
}

// IsExpired returns true if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch updates the last activity time
func (s *Session) Touch() {
	s.LastActivityAt = time.Now()
}

// Data exposes the session data bag.
func (s *Session) Data() *collection.Collection[any] {
	return s.data
}

func (s *Session) Get(key string) (any, bool) {
	return s.data.Get(key)
}

// GetString retrieves a string value from session data
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.data.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

func (s *Session) Set(key string, value any) *Session {
	s.data.Set(key, value)
	return s
}

func (s *Session) SetMany(values map[string]any) *Session {
	s.data.SetMany(values)
	return s
}

func (s *Session) Has(keys ...string) bool {
	return s.data.Has(keys...)
}

func (s *Session) Keys() []string {
	return s.data.Keys()
}

func (s *Session) Clear(key string) *Session {
	s.data.Clear(key)
	return s
}

// ClearAll drops all data and flash values. The CSRF token is kept.
func (s *Session) ClearAll() *Session {
	s.data.ClearAll()
	s.flashed.ClearAll()
	s.flashNext.ClearAll()
	return s
}

// Flash stores a value for the next request.
func (s *Session) Flash(key string, value any) *Session {
	s.flashNext.Set(key, value)
	return s
}

// FlashMany merges values into the flash bag for the next request.
func (s *Session) FlashMany(values map[string]any) *Session {
	s.flashNext.SetMany(values)
	return s
}

// Flashed returns a value flashed by the previous request.
func (s *Session) Flashed(key string) (any, bool) {
	return s.flashed.Get(key)
}

// FlashedAll returns every value flashed by the previous request.
func (s *Session) FlashedAll() map[string]any {
	return s.flashed.GetAll()
}

// FlashedKeys returns the keys flashed by the previous request.
func (s *Session) FlashedKeys() []string {
	return s.flashed.Keys()
}

// ClearFlash drops values flashed for the next request.
func (s *Session) ClearFlash() *Session {
	s.flashNext.ClearAll()
	return s
}

// Cycle promotes the values flashed for the next request to the current
// bag and starts an empty next bag.
func (s *Session) Cycle() *Session {
	s.flashed.SetAll(s.flashNext.GetAll())
	s.flashNext.ClearAll()
	return s
}

// Token returns the CSRF token, generating one on first use.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		s.token = generateToken()
	}
	return s.token
}

// SetToken replaces the CSRF token.
func (s *Session) SetToken(token string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s
}

// RegenerateToken replaces the CSRF token with a fresh random one.
func (s *Session) RegenerateToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = generateToken()
	return s.token
}

// Snapshot is the storable form of a session.
type Snapshot struct {
	ID             uuid.UUID      `json:"id"`
	Data           map[string]any `json:"data,omitempty"`
	Flashed        map[string]any `json:"flashed,omitempty"`
	FlashNext      map[string]any `json:"flash_next,omitempty"`
	Token          string         `json:"token,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Snapshot copies the session state. Maps are copied one level deep.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	return Snapshot{
		ID:             s.ID,
		Data:           s.data.GetAll(),
		Flashed:        s.flashed.GetAll(),
		FlashNext:      s.flashNext.GetAll(),
		Token:          token,
		ExpiresAt:      s.ExpiresAt,
		LastActivityAt: s.LastActivityAt,
		CreatedAt:      s.CreatedAt,
	}
}

// Restore builds a session from a snapshot. The snapshot maps are copied.
func Restore(snap Snapshot) *Session {
	return &Session{
		ID:             snap.ID,
		ExpiresAt:      snap.ExpiresAt,
		LastActivityAt: snap.LastActivityAt,
		CreatedAt:      snap.CreatedAt,
		data:           collection.New(snap.Data),
		flashed:        collection.New(snap.Flashed),
		flashNext:      collection.New(snap.FlashNext),
		token:          snap.Token,
	}
}

// generateToken returns 32 random bytes, base64url encoded.
// crypto/rand.Read never fails on supported platforms.
func generateToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
