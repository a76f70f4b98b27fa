package server

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"shipquickr/internal/core/config"
	"shipquickr/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "shipquickr/docs/swagger"
)

// healthTimeout bounds every dependency check run by GET /health.
const healthTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
	// checks are run by the health endpoint, keyed by dependency name.
	checks map[string]Check
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "shipquickr",
	})

	app.Use(requestid.New(requestid.Config{
		Header: "X-Ray-ID",
	}))

	// EnableStackTrace only gates the handler; the stack itself stays out of production logs.
	withStack := cfg.Environment != "production"
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			rayID, _ := c.Locals("requestid").(string)
			fields := []zap.Field{
				zap.String("ray_id", rayID),
				zap.String("path", c.Path()),
				zap.Any("panic", e),
			}
			if withStack {
				fields = append(fields, zap.ByteString("stack", debug.Stack()))
			}
			logger.Get().Error("Panic while handling request", fields...)
		},
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	s := &Server{
		App:    app,
		cfg:    cfg,
		checks: make(map[string]Check),
	}
	app.Get("/health", s.health)

	return s
}

// AddCheck registers a dependency probe for GET /health.
func (s *Server) AddCheck(name string, check Check) {
	s.checks[name] = check
}

// health reports 200 when every registered dependency answers, 503 otherwise.
func (s *Server) health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			continue
		}
		results[name] = "ok"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": http.StatusText(status),
		"checks": results,
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests up to timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.App.ShutdownWithTimeout(timeout)
}
