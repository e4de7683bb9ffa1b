package api

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/amaumene/dsnparr/internal/api/handlers"
	"github.com/amaumene/dsnparr/internal/api/middleware"
	"github.com/amaumene/dsnparr/internal/config"
	"github.com/amaumene/dsnparr/internal/controllers"
	"github.com/amaumene/dsnparr/internal/services/disney"
	"github.com/amaumene/dsnparr/internal/services/telegram"
)

// Server represents the HTTP server
type Server struct {
	app          *fiber.App
	addr         string
	checkHandler *handlers.CheckHandler
	cancel       context.CancelFunc
	logger       *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, checks *controllers.CheckController, catalog *disney.Catalog, tg *telegram.Client, logger *logrus.Logger) *Server {
	baseCtx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr:         ":" + cfg.ServerPort,
		checkHandler: handlers.NewCheckHandler(baseCtx, checks, tg, logger),
		cancel:       cancel,
		logger:       logger,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          cfg.SweepTimeout + 15*time.Second,
		IdleTimeout:           60 * time.Second,
	})
	s.app.Use(middleware.Logging(logger))
	s.setupRoutes(catalog)

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(catalog controllers.RegionSource) {
	s.app.Get("/health", handlers.Health)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")
	api.Get("/regions", handlers.NewRegionsHandler(catalog, s.logger).List)
	api.Post("/check", s.checkHandler.Check)
}

// App exposes the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Start starts the HTTP server and blocks until ctx is done
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(s.addr); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server and stops background checks
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := s.app.ShutdownWithContext(shutdownCtx)
	s.cancel()
	s.checkHandler.Wait()
	return err
}
