// Package mkit is a small application kit built around three pieces: a
// keyed data collection, a service container with event hooks, and a
// rule-string validator.
//
// App wires them together. It owns a container.Container with default
// bindings, a settings collection, a validator.Registry shared by every
// validator it creates, and a structured logger.
//
// Basic usage:
//
//	cfg, err := mkit.LoadConfig()
//	if err != nil {
//		return err
//	}
//	app, err := mkit.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//
//	err = app.Validate(map[string]any{"email": "a@b.co"}, map[string]string{
//		"email": "required|email",
//		"name":  "required|min:3",
//	})
//	var verr mkit.ValidationError
//	if errors.As(err, &verr) {
//		fmt.Println(verr.Get("name")) // The name field is required.
//	}
//
// Default container bindings:
//
//   - "logger": the app *slog.Logger (singleton)
//   - "registry": the shared *validator.Registry (singleton)
//   - "validator": a new *validator.Validator per Make; accepts a rules map
//     and a validator.TokenSource as params
//   - "session.store": an in-memory session.Store (singleton)
//   - "session.manager": a *session.Manager over the store (singleton)
//
// Hooks subscribed with On receive the container as the first argument.
// EventBooted is fired by Boot; EventValidatorChecked after each Validate.
package mkit
