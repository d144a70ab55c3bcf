package validator

import (
	"maps"
	"slices"
	"sync"
)

// Entry is a registry slot. Before first use only Factory is set; once
// resolved, Handler holds the shared instance.
type Entry struct {
	Name    string
	Factory HandlerFactory
	Handler Handler
}

// Ready reports whether the entry holds a constructed handler.
func (e Entry) Ready() bool {
	return e.Handler != nil
}

// Registry maps rule names to handlers. Handlers registered by factory are
// constructed on first Resolve and reused afterwards.
//
// A registry is an ordinary value: each Validator gets its own unless one
// is shared with WithRegistry, in which case mutations are visible to every
// validator using it. All methods are safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Entry
}

// NewRegistry creates a registry with the built-in handlers:
// "min" (MinimumHandler) and "email" (EmailHandler).
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	_ = r.Register("min", NewMinimumHandler)
	_ = r.Register("email", NewEmailHandler)
	return r
}

// NewEmptyRegistry creates a registry without any handler.
func NewEmptyRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register installs a lazily constructed handler, replacing any existing entry.
func (r *Registry) Register(name string, factory HandlerFactory) error {
	if name == "" {
		return ErrEmptyRuleName
	}
	if factory == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &Entry{Name: name, Factory: factory}
	return nil
}

// Set installs a ready handler instance, replacing any existing entry.
func (r *Registry) Set(name string, h Handler) error {
	if name == "" {
		return ErrEmptyRuleName
	}
	if h == nil {
		return ErrNilHandler
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = &Entry{Name: name, Handler: h}
	return nil
}

// Lookup returns a copy of the raw entry without constructing the handler.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Resolve returns the handler for name, constructing and caching it on first use.
func (r *Registry) Resolve(name string) (Handler, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	if e.Handler == nil {
		e.Handler = e.Factory()
		if e.Handler == nil {
			return nil, false
		}
	}
	return e.Handler, true
}

func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[name]
	return ok
}

// Clear removes the entry for name.
func (r *Registry) Clear(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Keys returns the registered rule names, sorted.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.entries))
}
