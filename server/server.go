package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"ttsguard/database"
	"ttsguard/internal/config"
	"ttsguard/server/handlers"
	"ttsguard/server/middleware"
	"ttsguard/server/services"
)

// Server HTTP сервер поверх gin с сервисным слоем и SQLite
type Server struct {
	config     *config.Config
	db         *database.DB
	registry   *services.Registry
	httpServer *http.Server
}

// NewServer создает сервер поверх открытой базы
func NewServer(cfg *config.Config, db *database.DB) *Server {
	return &Server{
		config:   cfg,
		db:       db,
		registry: services.NewRegistry(db, cfg.DueSoonThresholdDays),
	}
}

// Registry возвращает сервисный слой, используется в тестах
func (s *Server) Registry() *services.Registry {
	return s.registry
}

// Handler собирает gin роутер с middleware и всеми маршрутами
func (s *Server) Handler() http.Handler {
	// Режим Gin можно переопределить через переменную окружения GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinSecurityHeadersMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())

	handlers.RegisterSwaggerRoutes(router)
	handlers.RegisterRoutes(router, s.registry)

	return router
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // Выгрузки отчетов могут занимать время
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("starting HTTP server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	slog.Info("initiating graceful shutdown")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	slog.Info("graceful shutdown completed")
	return nil
}
