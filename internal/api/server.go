// Package api exposes the extraction engine over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campuswatch/extractor/internal/logging"
	"github.com/campuswatch/extractor/internal/telemetry"
)

// Default timeout values.
const (
	defaultReadTimeout     = 30 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 15 * time.Second
)

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	ServiceName    string
	ServiceVersion string
	Port           int
	Debug          bool
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server is the extractor HTTP server with lifecycle management.
type Server struct {
	router *gin.Engine
	server *http.Server
	logger logging.Logger
	cfg    ServerConfig
}

// NewServer builds the gin router with the standard middleware chain and all
// service routes, wrapped in an http.Server.
func NewServer(cfg ServerConfig, handler *Handler, tel *telemetry.Provider, log logging.Logger) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RecoveryMiddleware(log))
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(log))

	registerRoutes(router, handler, tel, cfg)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	return &Server{
		router: router,
		server: httpServer,
		logger: log,
		cfg:    cfg,
	}
}

// registerRoutes wires all endpoints. Health, readiness, and metrics stay
// public; everything under /api/v1 goes through rate limiting and, when a
// secret is configured, JWT bearer auth.
func registerRoutes(router *gin.Engine, handler *Handler, tel *telemetry.Provider, cfg ServerConfig) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	if tel != nil {
		router.GET("/metrics", gin.WrapH(tel.Handler()))
	}

	v1 := router.Group("/api/v1")
	if cfg.RateLimitRPS > 0 {
		v1.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	v1.Use(JWTMiddleware(cfg.JWTSecret))
	{
		extract := v1.Group("/extract")
		extract.POST("", handler.Extract)              // POST /api/v1/extract
		extract.POST("/batch", handler.ExtractBatch)   // POST /api/v1/extract/batch
		extract.POST("/document", handler.ExtractDocument) // POST /api/v1/extract/document

		offenses := v1.Group("/offenses")
		offenses.POST("/detect", handler.DetectOffenses) // POST /api/v1/offenses/detect

		v1.GET("/taxonomy", handler.GetTaxonomy) // GET /api/v1/taxonomy
	}
}

// Router returns the underlying Gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until shutdown or error.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server",
		logging.String("address", s.server.Addr),
		logging.String("service", s.cfg.ServiceName),
		logging.String("version", s.cfg.ServiceVersion),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, defaultShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// RunWithGracefulShutdown starts the server and shuts it down on SIGINT,
// SIGTERM, or context cancellation.
func (s *Server) RunWithGracefulShutdown(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		s.logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down")
	}

	//nolint:contextcheck // fresh context: the original may already be cancelled
	return s.Shutdown(context.Background())
}
