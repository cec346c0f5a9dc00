package ports

import "context"

// AuthService gates the console behind a single configured credential pair.
type AuthService interface {
	// Login compares both candidates against the configured pair by exact
	// string equality. On match it sets the session flag and arms the
	// one-shot welcome signal; on mismatch it returns
	// domain.ErrInvalidCredentials and leaves the flags untouched.
	Login(ctx context.Context, login, password string) error

	// Logout clears the session flags unconditionally.
	Logout(ctx context.Context) error

	// Authorized reports whether a session is active. It has no side effect.
	Authorized(ctx context.Context) bool

	// ConsumeWelcome reads and clears the one-shot just-logged-in signal.
	// True exactly once per successful login.
	ConsumeWelcome(ctx context.Context) bool
}
