package mkit

import "errors"

var (
	ErrLoadMessages = errors.New("mkit.load_messages")
	ErrNoSession    = errors.New("mkit.no_session")
)
