package mkit

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/mkit/pkg/binder"
	"github.com/dmitrymomot/mkit/pkg/collection"
	"github.com/dmitrymomot/mkit/pkg/container"
	"github.com/dmitrymomot/mkit/pkg/logger"
	"github.com/dmitrymomot/mkit/pkg/session"
	"github.com/dmitrymomot/mkit/pkg/validator"
)

// Names of the default container bindings.
const (
	BindingLogger         = "logger"
	BindingRegistry       = "registry"
	BindingValidator      = "validator"
	BindingSessionStore   = "session.store"
	BindingSessionManager = "session.manager"
)

const sessionCleanupInterval = 5 * time.Minute

// Hook events fired by App.
const (
	// EventBooted fires once from Boot with the *App as the only param.
	EventBooted = "app.booted"
	// EventValidatorChecked fires after every Validate call with the
	// *validator.Validator and the bool result.
	EventValidatorChecked = "validator.checked"
)

// App wires the container, settings, validation and sessions together.
type App struct {
	cfg       Config
	container *container.Container
	settings  *collection.Collection[any]
	registry  *validator.Registry
	messages  map[string]string
	log       *slog.Logger

	bootOnce sync.Once
}

// Option configures an App.
type Option func(*App)

// WithLogger replaces the logger built from Config.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithRegistry shares an existing rule registry with the app.
func WithRegistry(r *validator.Registry) Option {
	return func(a *App) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithMessages overlays validation messages on the app defaults.
func WithMessages(messages map[string]string) Option {
	return func(a *App) {
		maps.Copy(a.messages, messages)
	}
}

// WithSettings seeds the settings collection.
func WithSettings(settings map[string]any) Option {
	return func(a *App) {
		a.settings.SetMany(settings)
	}
}

// New creates an app from cfg. Messages are loaded from cfg.MessagesFile
// when set, picking the catalog language closest to cfg.Language.
func New(ctx context.Context, cfg Config, opts ...Option) (*App, error) {
	a := &App{
		cfg:      cfg,
		settings: collection.New[any](nil),
		registry: validator.NewRegistry(),
		messages: validator.DefaultMessages(),
		log:      newLogger(cfg),
	}

	if cfg.MessagesFile != "" {
		catalog, err := validator.LoadCatalog(ctx, cfg.MessagesFile)
		if err != nil {
			return nil, errors.Join(ErrLoadMessages, err)
		}
		maps.Copy(a.messages, catalog.Messages(language.Make(cfg.Language)))
	}

	for _, opt := range opts {
		opt(a)
	}

	a.container = container.New(container.WithLogger(a.log))
	if err := a.bindDefaults(); err != nil {
		return nil, err
	}

	a.log.DebugContext(ctx, "app created",
		logger.Component("app"),
		slog.String("language", cfg.Language),
		logger.Count(len(a.registry.Keys())),
	)
	return a, nil
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{logger.WithEnvironment(cfg.Env, cfg.Service)}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	return logger.New(opts...)
}

func (a *App) bindDefaults() error {
	return errors.Join(
		a.container.Singleton(BindingLogger, func(*container.Container, ...any) any {
			return a.log
		}),
		a.container.Singleton(BindingRegistry, func(*container.Container, ...any) any {
			return a.registry
		}),
		a.container.Bind(BindingValidator, a.validatorFactory, false),
		a.container.Singleton(BindingSessionStore, func(*container.Container, ...any) any {
			return session.NewMemoryStore(sessionCleanupInterval)
		}),
		a.container.Singleton(BindingSessionManager, func(c *container.Container, _ ...any) any {
			store, err := container.MakeAs[session.Store](c, BindingSessionStore)
			if err != nil {
				return nil
			}
			return session.NewManager(store,
				session.WithTTL(a.cfg.SessionTTL),
				session.WithLogger(a.log),
			)
		}),
	)
}

// validatorFactory builds a fresh validator. Accepted params, in any order:
// a map[string]string of field rules and a validator.TokenSource enabling
// the CSRF check.
func (a *App) validatorFactory(_ *container.Container, params ...any) any {
	opts := []validator.Option{
		validator.WithRegistry(a.registry),
		validator.WithMessages(a.messages),
		validator.WithCSRFField(a.cfg.CSRFField),
		validator.WithLogger(a.log),
	}
	for _, p := range params {
		switch p := p.(type) {
		case map[string]string:
			opts = append(opts, validator.WithRules(p))
		case *session.Session:
			if p != nil {
				opts = append(opts, validator.WithSession(p))
			}
		case validator.TokenSource:
			if p != nil {
				opts = append(opts, validator.WithSession(p))
			}
		}
	}
	return validator.New(opts...)
}

// Boot fires EventBooted. Later calls do nothing.
func (a *App) Boot() *App {
	a.bootOnce.Do(func() {
		a.log.Debug("app booted", logger.Component("app"), logger.Event(EventBooted))
		a.container.Call(EventBooted, a)
	})
	return a
}

func (a *App) Config() Config { return a.cfg }
func (a *App) Container() *container.Container { return a.container }
func (a *App) Settings() *collection.Collection[any] { return a.settings }
func (a *App) Registry() *validator.Registry { return a.registry }
func (a *App) Logger() *slog.Logger { return a.log }

// Messages returns a copy of the app's validation messages.
func (a *App) Messages() map[string]string {
	return maps.Clone(a.messages)
}

// Make resolves a container binding.
func (a *App) Make(name string, params ...any) (any, bool) {
	return a.container.Make(name, params...)
}

// On subscribes a hook to an event.
func (a *App) On(event string, hook container.Hook) error {
	return a.container.On(event, hook)
}

// Validator returns a new validator bound to the app registry and messages.
func (a *App) Validator(rules map[string]string, token validator.TokenSource) *validator.Validator {
	params := []any{rules}
	if token != nil {
		params = append(params, token)
	}
	v, err := container.MakeAs[*validator.Validator](a.container, BindingValidator, params...)
	if err != nil {
		// The binding was replaced with something else; fall back to a direct build.
		return a.validatorFactory(a.container, params...).(*validator.Validator)
	}
	return v
}

// Validate checks data against rules and returns a ValidationError when
// any rule fails. Fields are checked in sorted order.
func (a *App) Validate(data map[string]any, rules map[string]string) error {
	return a.check(a.Validator(rules, nil), data)
}

// ValidateRequest records the request input with binder.Record and checks
// it against rules. A non-nil sess enables the CSRF check; when sess is nil
// the session attached to the request context, if any, is used instead.
// The recorded data is returned even when validation fails.
func (a *App) ValidateRequest(r *http.Request, rules map[string]string, sess *session.Session) (map[string]any, error) {
	data, err := binder.Record(r)
	if err != nil {
		return nil, err
	}

	if sess == nil {
		sess, _ = session.FromContext(r.Context())
	}
	var token validator.TokenSource
	if sess != nil {
		token = sess
	}
	return data, a.check(a.Validator(rules, token), data)
}

func (a *App) check(v *validator.Validator, data map[string]any) error {
	ok := v.Check(data, nil)
	a.container.Call(EventValidatorChecked, v, ok)
	if ok {
		return nil
	}
	return ValidationErrorFrom(v.Errors())
}

// Sessions returns the session manager bound in the container.
func (a *App) Sessions() (*session.Manager, error) {
	m, err := container.MakeAs[*session.Manager](a.container, BindingSessionManager)
	if err != nil || m == nil {
		return nil, errors.Join(ErrNoSession, err)
	}
	return m, nil
}

// Close releases resources held by resolved bindings.
func (a *App) Close() error {
	if !a.container.Resolved(BindingSessionStore) {
		return nil
	}
	v, _ := a.container.Make(BindingSessionStore)
	if c, ok := v.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
