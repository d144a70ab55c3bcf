// Package container provides a small inversion-of-control container with
// named event hooks.
//
// A binding maps a name to a Factory. Transient bindings call their factory
// on every Make; singleton bindings cache the first result and return it
// until MakeForce (or Remake) runs the factory again and replaces the cache.
// Resolving an unknown name is not an error: Make reports ok=false and the
// caller decides what to do. MakeAs adds a typed variant returning
// ErrNotBound or ErrTypeMismatch.
//
// Hooks are subscribers for a named event. Call fires them synchronously in
// registration order, passing the container and the call parameters. Calling
// an event nobody subscribed to does nothing.
//
// # Usage
//
//	c := container.New(container.WithLogger(log))
//
//	_ = c.Singleton("mailer", func(c *container.Container, _ ...any) any {
//		return mailer.New()
//	})
//	m, err := container.MakeAs[*mailer.Mailer](c, "mailer")
//
//	_ = c.On("user.created", func(c *container.Container, params ...any) {
//		log.Info("created", "id", params[0])
//	})
//	c.Call("user.created", userID)
//
// The container is safe for concurrent use. Factories and hooks run without
// holding the registry lock, so they may bind, make or call recursively.
package container
