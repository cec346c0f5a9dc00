package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/simplexhr/hr-console/docs"
	"github.com/simplexhr/hr-console/internal/api/handler"
	"github.com/simplexhr/hr-console/internal/api/middleware"
	"github.com/simplexhr/hr-console/internal/core/service"
	"github.com/simplexhr/hr-console/internal/infrastructure/config"
	redisdb "github.com/simplexhr/hr-console/internal/infrastructure/db/redis"
	"github.com/simplexhr/hr-console/internal/infrastructure/remote"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hrconsole"))

	// --- Dependencies ---
	store := remote.NewEmployeeAPI(cfg.EmployeeAPI.BaseURL, cfg.EmployeeAPI.Timeout, log)
	cache := service.NewEmployeeCache(store, log)
	employeeService := service.NewEmployeeService(store, cache, log)
	sessions := redisdb.NewSessionStore(rdb)
	authService := service.NewAuthService(sessions, cfg.ConsoleLogin, cfg.ConsolePassword, log)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)

	// --- Auth routes (open) ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Protected console routes ---
	guarded := e.Group("/v1", middleware.Session(authService))
	guarded.GET("/session", authHandler.Session)
	guarded.GET("/employees", employeeHandler.List)
	guarded.GET("/employees/:id", employeeHandler.Get)
	guarded.POST("/employees", employeeHandler.Create)
	guarded.PUT("/employees/:id", employeeHandler.Update)
	guarded.DELETE("/employees/:id", employeeHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(rdb, store).Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
