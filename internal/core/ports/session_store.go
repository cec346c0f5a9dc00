package ports

import "context"

// Session flag keys. Authenticated means SessionKeyAuth holds exactly "true";
// any other value, including a present-but-garbage one, reads as
// unauthenticated.
const (
	SessionKeyAuth    = "isAuth"
	SessionKeyWelcome = "justLoggedIn"
)

// SessionStore is the durable key-value slot backing the session flags.
// Absent keys yield an empty string with a nil error; a non-nil error means
// the store itself is unreachable.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// GetDelete atomically reads and removes the key, backing one-shot
	// signals: the first reader receives the value, every later reader
	// receives the empty string.
	GetDelete(ctx context.Context, key string) (string, error)
}
