// Package redis holds the Redis client setup and the session flag store
// built on it. Redis is the console's only owned state: two session keys,
// no employee data.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds the startup ping when the config carries none.
const connectTimeout = 5 * time.Second

// Config carries the connection settings for the session flag store.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect opens a client against the configured instance and verifies it
// answers a ping before the server starts taking logins.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
