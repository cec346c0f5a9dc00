package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// The single operator credential pair, compared by exact equality at
	// login. Both must be set; empty values reject every attempt.
	ConsoleLogin    string `env:"CONSOLE_LOGIN"`
	ConsolePassword string `env:"CONSOLE_PASSWORD"`

	EmployeeAPI EmployeeAPIConfig
	Redis       RedisConfig
}

type EmployeeAPIConfig struct {
	BaseURL string `env:"EMPLOYEE_API_URL, default=https://6915c6cd465a9144626d8a12.mockapi.io/simplex_task"`
	// Timeout bounds each remote call; 0 disables the client-side deadline
	// and a hung call stays pending until the transport gives up.
	Timeout time.Duration `env:"EMPLOYEE_API_TIMEOUT, default=0"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
