package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/quillnotes/quill/internal/audit"
	"github.com/quillnotes/quill/internal/command"
	"github.com/quillnotes/quill/internal/executor"
	"github.com/quillnotes/quill/internal/logging"
	"github.com/quillnotes/quill/internal/tool"
)

// Config holds server configuration.
type Config struct {
	Port         int
	EnableCORS   bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:         7777,
		EnableCORS:   true,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP inspection server.
type Server struct {
	config   *Config
	router   *chi.Mux
	httpSrv  *http.Server
	registry *command.Registry
	auditLog *audit.Log
	catalog  *tool.Catalog
	executor *executor.Executor
}

// New creates a new Server instance over the given core components.
func New(cfg *Config, registry *command.Registry, auditLog *audit.Log, catalog *tool.Catalog, exec *executor.Executor) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		config:   cfg,
		router:   chi.NewRouter(),
		registry: registry,
		auditLog: auditLog,
		catalog:  catalog,
		executor: exec,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)

	if s.config.EnableCORS {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
	}
}

// Start begins listening. It blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	log := logging.Component("server")
	log.Info().Str("addr", addr).Msg("inspection API listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
