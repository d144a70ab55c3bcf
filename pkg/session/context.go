package session

import "context"

type ctxKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by NewContext. A nil session
// counts as absent.
func FromContext(ctx context.Context) (*Session, bool) {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s, s != nil
}

// Attach starts the session with the given ID and returns a context
// carrying it, ready for request-scoped consumers such as CSRF checks.
func (m *Manager) Attach(ctx context.Context, id string) (context.Context, *Session, error) {
	s, err := m.Start(ctx, id)
	if err != nil {
		return ctx, nil, err
	}
	return NewContext(ctx, s), s, nil
}
