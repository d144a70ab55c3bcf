package container

import "errors"

var (
	// ErrInvalidHook is returned by On when the hook is nil.
	ErrInvalidHook = errors.New("container.invalid_hook")

	// ErrInvalidFactory is returned by Bind when the factory is nil.
	ErrInvalidFactory = errors.New("container.invalid_factory")

	// ErrNotBound is returned by MakeAs when the name has no binding.
	ErrNotBound = errors.New("container.not_bound")

	// ErrTypeMismatch is returned by MakeAs when the resolved value has another type.
	ErrTypeMismatch = errors.New("container.type_mismatch")
)
