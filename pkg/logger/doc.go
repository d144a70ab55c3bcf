// Package logger builds *slog.Logger instances for mkit components.
//
// New creates a logger configured by functional options: output format
// (text or JSON), minimum level, static attributes and ContextExtractor
// callbacks that pull request-scoped values out of a context.Context on
// every record. WithEnvironment applies sensible development, staging or
// production defaults in one call.
//
// Components such as the container and the validator take an optional
// *slog.Logger; when none is supplied they use Discard, which drops every
// record. Attribute helpers (Component, Binding, Event, Rule, Field, ...)
// keep key names consistent across packages.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment("production", "billing"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.Info("binding resolved", logger.Binding("mailer"))
package logger
