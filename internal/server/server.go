package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/nishanthcgit/haystack-website/internal/outline"
)

// Config holds server configuration.
type Config struct {
	Port     int
	SiteDir  string // directory containing the built site
	AllowAll bool   // allow all CORS origins (dev mode)
}

// StarSource provides the star count served by /api/stars.
type StarSource interface {
	Load(ctx context.Context) (int, bool)
}

// Outliner returns the headings of a page by its docs-relative path.
type Outliner interface {
	Outline(relPath string) ([]outline.Heading, error)
}

// Server serves a built site together with its small JSON API and the
// live-reload socket.
type Server struct {
	cfg        Config
	log        *slog.Logger
	stars      StarSource
	outliner   Outliner
	reload     *Hub
	router     chi.Router
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for requests and server events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithStars enables /api/stars.
func WithStars(src StarSource) Option {
	return func(s *Server) { s.stars = src }
}

// WithOutliner enables /api/outline.
func WithOutliner(o Outliner) Option {
	return func(s *Server) { s.outliner = o }
}

// WithReloadHub enables the /livereload socket.
func WithReloadHub(h *Hub) Option {
	return func(s *Server) { s.reload = h }
}

// New creates a server for the site in cfg.SiteDir.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{cfg: cfg, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// The reload socket outlives any request timeout.
	if s.reload != nil {
		r.Get("/livereload", s.reload.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Route("/api", func(r chi.Router) {
			r.Get("/stars", s.handleStars)
			r.Get("/outline", s.handleOutline)
			r.Get("/pages", s.handlePages)
		})

		r.Handle("/*", http.FileServer(http.Dir(s.cfg.SiteDir)))
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port. It returns
// http.ErrServerClosed after Shutdown.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("docsite server listening", "addr", addr, "site", s.cfg.SiteDir)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes reload sockets.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.reload != nil {
		s.reload.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
