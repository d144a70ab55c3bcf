package container

import (
	"log/slog"

	"github.com/dmitrymomot/mkit/pkg/logger"
)

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for debug records about bindings and hooks.
func WithLogger(l *slog.Logger) Option {
	return func(c *Container) {
		c.log = logger.OrDiscard(l).With(logger.Component("container"))
	}
}
