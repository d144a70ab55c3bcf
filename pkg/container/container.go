package container

import (
	"log/slog"
	"sync"

	"github.com/dmitrymomot/mkit/pkg/logger"
)

// Factory builds the value for a binding. The container is passed explicitly
// so factories can resolve their own dependencies; params are whatever the
// caller handed to Make.
type Factory func(c *Container, params ...any) any

// Hook is a subscriber for a named event.
type Hook func(c *Container, params ...any)

// binding is one registered factory. For singletons, value holds the cached
// result once resolved is true.
type binding struct {
	mu        sync.Mutex
	factory   Factory
	singleton bool
	resolved  bool
	value     any
}

// Container is a named factory registry with optional memoization and a
// publish/subscribe hook table. It is safe for concurrent use; factories and
// hooks run outside the registry lock and may call back into the container.
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	hooks    map[string][]Hook
	log      *slog.Logger
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		bindings: make(map[string]*binding),
		hooks:    make(map[string][]Hook),
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bind registers factory under name, replacing any previous binding together
// with its cached value. Singleton bindings memoize the first result.
func (c *Container) Bind(name string, factory Factory, singleton bool) error {
	if factory == nil {
		return ErrInvalidFactory
	}

	c.mu.Lock()
	c.bindings[name] = &binding{factory: factory, singleton: singleton}
	c.mu.Unlock()

	c.log.Debug("binding registered", logger.Binding(name), slog.Bool("singleton", singleton))
	return nil
}

// Singleton is shorthand for Bind(name, factory, true).
func (c *Container) Singleton(name string, factory Factory) error {
	return c.Bind(name, factory, true)
}

// Make resolves name. The second result is false when nothing is bound under
// name; that is not an error. Transient bindings run their factory on every
// call; singletons return the cached value after the first call.
func (c *Container) Make(name string, params ...any) (any, bool) {
	return c.make(name, false, params)
}

// MakeForce resolves name ignoring any cached singleton value. For a
// singleton the fresh result replaces the cache.
func (c *Container) MakeForce(name string, params ...any) (any, bool) {
	return c.make(name, true, params)
}

// Remake is an alias for MakeForce.
func (c *Container) Remake(name string, params ...any) (any, bool) {
	return c.make(name, true, params)
}

func (c *Container) make(name string, force bool, params []any) (any, bool) {
	c.mu.RLock()
	b, ok := c.bindings[name]
	c.mu.RUnlock()

	if !ok {
		c.log.Debug("binding not found", logger.Binding(name))
		return nil, false
	}

	if !b.singleton {
		return b.factory(c, params...), true
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.resolved && !force {
		return b.value, true
	}

	b.value = b.factory(c, params...)
	b.resolved = true

	c.log.Debug("singleton resolved", logger.Binding(name), slog.Bool("forced", force))
	return b.value, true
}

// MakeAs resolves name and asserts the result to T.
func MakeAs[T any](c *Container, name string, params ...any) (T, error) {
	var zero T

	v, ok := c.Make(name, params...)
	if !ok {
		return zero, ErrNotBound
	}

	t, ok := v.(T)
	if !ok {
		return zero, ErrTypeMismatch
	}
	return t, nil
}

// Bound reports whether a binding exists for name.
func (c *Container) Bound(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[name]
	return ok
}

// Resolved reports whether name is a singleton with a cached value.
func (c *Container) Resolved(name string) bool {
	c.mu.RLock()
	b, ok := c.bindings[name]
	c.mu.RUnlock()

	if !ok || !b.singleton {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.resolved
}

// Unbind removes the binding for name.
func (c *Container) Unbind(name string) {
	c.mu.Lock()
	delete(c.bindings, name)
	c.mu.Unlock()
}

// On subscribes hook to event. Hooks fire in registration order.
func (c *Container) On(event string, hook Hook) error {
	if hook == nil {
		return ErrInvalidHook
	}

	c.mu.Lock()
	c.hooks[event] = append(c.hooks[event], hook)
	c.mu.Unlock()

	c.log.Debug("hook registered", logger.Event(event))
	return nil
}

// Off removes every hook subscribed to event.
func (c *Container) Off(event string) {
	c.mu.Lock()
	delete(c.hooks, event)
	c.mu.Unlock()
}

// Hooks returns the number of hooks subscribed to event.
func (c *Container) Hooks(event string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hooks[event])
}

// Call invokes every hook for event with params. Events without hooks are a no-op.
func (c *Container) Call(event string, params ...any) *Container {
	c.mu.RLock()
	hooks := append([]Hook(nil), c.hooks[event]...)
	c.mu.RUnlock()

	if len(hooks) > 0 {
		c.log.Debug("calling hooks", logger.Event(event), logger.Count(len(hooks)))
	}

	for _, hook := range hooks {
		hook(c, params...)
	}
	return c
}
