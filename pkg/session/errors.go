package session

import "errors"

var (
	// ErrInvalidSession indicates a nil session or one without an ID
	ErrInvalidSession = errors.New("session.invalid")

	// ErrSessionExpired indicates the session has expired
	ErrSessionExpired = errors.New("session.expired")

	// ErrSessionNotFound indicates no session was found
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrNoStore indicates the manager was created without a store
	ErrNoStore = errors.New("session.no_store")
)
