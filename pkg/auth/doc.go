// Package auth provides a basic session-backed authentication layer.
//
// Basic stores the logged-in user in a session.Session under the "user" key.
// Passwords are hashed with bcrypt on Login and checked with Verify; the
// plain password is never kept.
//
//	a := auth.NewBasic(sess)
//	if err := a.Login("42", "alice", password); err != nil {
//		return err
//	}
//	a.IsLoggedIn() // true
//	a.Logout()
package auth
