// Package api provides the HTTP API server and handlers for the MediaLog application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/medialog/medialog-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        *store.Store
	services     *Services
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	writeLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:        st,
		services:     services,
		router:       router,
		logger:       logger,
		writeLimiter: NewRateLimiter(120, time.Minute, 30),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("MediaLog API", "1.0.0")
	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(RateLimitMiddleware(s.writeLimiter, s.logger))
}

// setupRoutes registers every huma operation.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerUserRoutes()
	s.registerCatalogRoutes()
	s.registerListRoutes()
	s.registerStatsRoutes()
	s.registerReconcileRoutes()
}
