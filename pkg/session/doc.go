// Package session provides server-side sessions with flash messages and a
// CSRF token.
//
// A Session holds arbitrary values in a collection-backed data bag. Values
// set with Flash survive exactly one Manager.Start cycle and are read back
// with Flashed. Token lazily generates a random CSRF token, which makes a
// *Session usable as the validator's token source.
//
// Persistence goes through the Store interface; MemoryStore is the bundled
// implementation and keeps snapshots so callers never share state with it.
//
// Basic usage:
//
//	store := session.NewMemoryStore(time.Minute)
//	defer store.Close()
//
//	mgr := session.NewManager(store, session.WithTTL(2*time.Hour))
//	s, err := mgr.Start(ctx, cookieValue)
//	if err != nil {
//		return err
//	}
//	s.Set("user_id", 42).Flash("notice", "Saved")
//	if err := mgr.Save(ctx, s); err != nil {
//		return err
//	}
package session
