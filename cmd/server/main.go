package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/simplexhr/hr-console/internal/api"
	"github.com/simplexhr/hr-console/internal/infrastructure/config"
	redisdb "github.com/simplexhr/hr-console/internal/infrastructure/db/redis"
	"github.com/simplexhr/hr-console/pkg/logger"
)

// @title        HR Console API
// @version      1.0
// @description  Employee-management console: a guarded, cached, validating gateway in front of a hosted employee collection.
// @BasePath     /
func main() {
	// Best-effort .env load so local runs pick credentials from a file.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	e := api.NewRouter(cfg, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("hr-console started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http server shutdown failed")
	}

	log.Info().Msg("goodbye")
}
