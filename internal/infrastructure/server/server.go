package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/roteiro/core/docs"
	httpHandlers "github.com/roteiro/core/internal/adapters/http"
	"github.com/roteiro/core/internal/adapters/repository"
	"github.com/roteiro/core/internal/adapters/repository/postgres"
	"github.com/roteiro/core/internal/application/services"
	"github.com/roteiro/core/internal/infrastructure/config"
	"github.com/roteiro/core/internal/infrastructure/database"
	"github.com/roteiro/core/internal/infrastructure/logger"
	"github.com/roteiro/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
	cache  *repository.RedisCache
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance. The storage engine behind the
// repositories is selected by the configuration: the flat-file JSON
// document store by default, postgres when configured.
func New(cfg *config.Config, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
	}

	var (
		userRepo ports.UserRepository
		itemRepo ports.ItemRepository
	)
	switch cfg.Storage.Engine {
	case config.EnginePostgres:
		db, err := database.New(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		server.db = db
		userRepo = postgres.NewUserRepository(db)
		itemRepo = postgres.NewItemRepository(db)
	default:
		store := repository.NewStore(cfg.Storage.FilePath)
		userRepo = repository.NewUserRepository(store)
		itemRepo = repository.NewItemRepository(store)
	}

	var cache ports.CacheRepository
	if cfg.Cache.Enabled {
		redisCache, err := repository.NewRedisCache(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		server.cache = redisCache
		cache = redisCache
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT, appLogger)
	userService := services.NewUserService(userRepo, appLogger)
	catalogService := services.NewCatalogService(itemRepo, cache, cfg.Cache.TTL, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	userHandler := httpHandlers.NewUserHandler(userService, appLogger)
	catalogHandler := httpHandlers.NewCatalogHandler(catalogService, appLogger)

	server.setupMiddleware()
	server.setupRoutes(authHandler, userHandler, catalogHandler, authService)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// Echo exposes the underlying echo instance, mainly for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(s.config.Security.RateLimitRequests),
				Burst:     s.config.Security.RateLimitRequests,
				ExpiresIn: s.config.Security.RateLimitWindow,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		},
	}))

	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: s.config.Server.WriteTimeout,
	}))

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	s.echo.Use(middleware.RequestID())
}

// setupRoutes configures all routes. The legacy Portuguese paths are kept
// verbatim so existing front ends keep working.
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, userHandler *httpHandlers.UserHandler, catalogHandler *httpHandlers.CatalogHandler, authService *services.AuthService) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// Auth routes
	s.echo.POST("/auth/register", authHandler.Register)
	s.echo.POST("/auth/login", authHandler.Login)

	// Legacy user routes
	s.echo.GET("/usuarios", userHandler.ListUsers)
	s.echo.POST("/usuarios", userHandler.CreateUser)
	s.echo.GET("/usuarios/:id", userHandler.GetUser)
	s.echo.PATCH("/usuarios/:id", userHandler.PatchUser)

	// Catalog routes
	s.echo.GET("/itens", catalogHandler.ListItems)
	s.echo.GET("/itens/:id", catalogHandler.GetItem)
	s.echo.POST("/itens", catalogHandler.CreateItem, s.authMiddleware(authService), s.requireAdmin())
	s.echo.PUT("/itens/:id", catalogHandler.UpdateItem, s.authMiddleware(authService), s.requireAdmin())
	s.echo.DELETE("/itens/:id", catalogHandler.DeleteItem, s.authMiddleware(authService), s.requireAdmin())

	// Favorites
	s.echo.GET("/favoritos/:userId", userHandler.GetFavorites)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// healthCheck reports server and storage health.
func (s *Server) healthCheck(c echo.Context) error {
	status := "ok"
	checks := map[string]interface{}{
		"storage": map[string]string{"engine": s.config.Storage.Engine},
	}

	if s.db != nil {
		if err := s.db.HealthCheck(); err != nil {
			status = "error"
			checks["database"] = map[string]string{"status": "error", "error": err.Error()}
		} else {
			checks["database"] = map[string]string{"status": "ok"}
		}
	}

	response := map[string]interface{}{
		"status":  status,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"checks":  checks,
		"version": s.config.App.Version,
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address, "engine", s.config.Storage.Engine)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn("Failed to close cache", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("Failed to close database", "error", err)
		}
	}
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders errors in the legacy {"error": message} shape.
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		message := http.StatusText(code)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			message = fmt.Sprintf("%v", he.Message)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if _, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			message = err.Error()
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			var respErr error
			if c.Request().Method == echo.HEAD {
				respErr = c.NoContent(code)
			} else {
				respErr = c.JSON(code, map[string]string{"error": message})
			}
			if respErr != nil {
				logger.Error("Error sending response", "error", respErr)
			}
		}
	}
}
