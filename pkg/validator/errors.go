package validator

import "errors"

var (
	// ErrValidationFailed is the message of an empty ValidationErrors.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNilHandler is returned when registering a nil handler or factory.
	ErrNilHandler = errors.New("validator: nil handler")

	// ErrEmptyRuleName is returned when registering a handler without a name.
	ErrEmptyRuleName = errors.New("validator: empty rule name")

	// ErrUnsupportedCatalog is returned for catalog files that are neither YAML nor JSON.
	ErrUnsupportedCatalog = errors.New("validator: unsupported message catalog format")

	// ErrParseCatalog is returned when a message catalog cannot be decoded.
	ErrParseCatalog = errors.New("validator: failed to parse message catalog")

	// ErrEmptyCatalog is returned when a catalog holds no languages.
	ErrEmptyCatalog = errors.New("validator: message catalog is empty")
)
