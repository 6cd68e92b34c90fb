// Package server wires the gin engine, middleware and routes, and owns
// the HTTP listener lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imeicheck/pkg/config"
	"imeicheck/pkg/handlers"
	"imeicheck/pkg/logger"
	"imeicheck/pkg/middleware"
)

const (
	DefaultReadTimeout = 30 * time.Second
	// Batch checks hold the connection for the full duration of all
	// chunks, so the response write timeout must not cut them off.
	DefaultWriteTimeout = 30 * time.Minute
	DefaultIdleTimeout  = 120 * time.Second
)

// Server represents the HTTP server component
type Server struct {
	engine     *gin.Engine
	server     *http.Server
	config     *config.Config
	handlerSvc *handlers.HandlerService
}

// New creates the HTTP server with middleware and routes configured.
func New(cfg *config.Config, handlerSvc *handlers.HandlerService) *Server {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.GinZapLogger())
	engine.Use(middleware.ErrorHandler())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Content-Type", "Authorization"},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	s := &Server{
		engine:     engine,
		config:     cfg,
		handlerSvc: handlerSvc,
	}
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		IdleTimeout:  DefaultIdleTimeout,
	}

	logger.Info("HTTP server initialized",
		zap.String("listen_addr", addr),
		zap.Bool("demo_mode", cfg.Server.DemoMode))
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.handlerSvc.Health)

	api := s.engine.Group("/api")
	if s.config.Server.DemoMode {
		api.POST("/check-imei", s.handlerSvc.DemoCheckIMEI)
		api.POST("/check-batch-imei", s.handlerSvc.DemoCheckBatchIMEI)
	} else {
		api.POST("/check-imei", s.handlerSvc.CheckIMEI)
		api.POST("/check-batch-imei", s.handlerSvc.CheckBatchIMEI)
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}
	return nil
}
