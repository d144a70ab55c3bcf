package validator

import (
	"log/slog"

	"github.com/dmitrymomot/mkit/pkg/logger"
)

// DefaultCSRFField is the record key checked against the session token.
const DefaultCSRFField = "csrf_token"

// TokenSource supplies the current CSRF token, typically a session.
type TokenSource interface {
	Token() string
}

// Option configures a Validator.
type Option func(*Validator)

// WithRegistry shares a handler registry between validators.
func WithRegistry(r *Registry) Option {
	return func(v *Validator) {
		if r != nil {
			v.registry = r
		}
	}
}

// WithSession enables the CSRF check against the given token source.
func WithSession(s TokenSource) Option {
	return func(v *Validator) { v.session = s }
}

// WithCSRFField changes the record key holding the CSRF token.
func WithCSRFField(name string) Option {
	return func(v *Validator) {
		if name != "" {
			v.csrfField = name
		}
	}
}

// WithMessages overlays messages on the default message set.
func WithMessages(messages map[string]string) Option {
	return func(v *Validator) {
		v.messages = mergeMessages(v.messages, messages)
	}
}

// WithRules sets rule strings for several fields. Fields are registered in
// sorted order; use SetRulesFor when evaluation order matters.
func WithRules(rules map[string]string) Option {
	return func(v *Validator) {
		for _, field := range sortedKeys(rules) {
			v.SetRulesFor(field, rules[field])
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		v.log = logger.OrDiscard(l).With(logger.Component("validator"))
	}
}
