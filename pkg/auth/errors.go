package auth

import "errors"

var (
	ErrNoSession          = errors.New("auth.no_session")
	ErrNotLoggedIn        = errors.New("auth.not_logged_in")
	ErrInvalidCredentials = errors.New("auth.invalid_credentials")
	ErrEmptyUserID        = errors.New("auth.empty_user_id")
)
