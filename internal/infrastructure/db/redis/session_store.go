package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionStore implements ports.SessionStore on Redis. Keys carry no TTL:
// the session flag lives until logout removes it.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore wraps the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, sessionPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session get %q: %w", key, err)
	}
	return val, nil
}

func (s *SessionStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, sessionPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("session set %q: %w", key, err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, sessionPrefix+key).Err(); err != nil {
		return fmt.Errorf("session delete %q: %w", key, err)
	}
	return nil
}

// GetDelete backs one-shot signals; GETDEL makes the read-and-clear atomic
// on the server.
func (s *SessionStore) GetDelete(ctx context.Context, key string) (string, error) {
	val, err := s.client.GetDel(ctx, sessionPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session getdel %q: %w", key, err)
	}
	return val, nil
}
