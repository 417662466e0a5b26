// Package web provides the HTTP server and handlers for the dashboard.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/dashboard/internal/config"
	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/web/middleware"
)

// Server is the HTTP server for the dashboard.
type Server struct {
	cfg      *config.Config
	service  *core.Service
	router   *chi.Mux
	server   *http.Server
	sessions *sessionStore
	metrics  *Metrics

	// heavy guards export and import endpoints; nil when rate limiting
	// is disabled.
	heavy *middleware.RateLimiter
}

// NewServer creates a Server serving service with the settings in cfg.
func NewServer(service *core.Service, cfg *config.Config) (*Server, error) {
	sessions, err := newSessionStore(cfg.View.SessionCapacity, cfg.Security.SecureCookies)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		service:  service,
		router:   chi.NewRouter(),
		sessions: sessions,
		metrics:  NewMetrics(service),
	}
	if cfg.Rate.Enabled {
		s.heavy = middleware.NewRateLimiter(cfg.Rate.ExportLimit, max(cfg.Rate.ExportLimit/4, 1))
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() error {
	trusted, err := middleware.ParseTrustedProxies(s.cfg.Security.TrustedProxies)
	if err != nil {
		return err
	}

	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(trusted))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	s.router.Use(chimw.Compress(5))
	s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))
	s.router.Use(s.metrics.Middleware)
	s.router.Use(requestMetadata)

	if s.cfg.Rate.Enabled {
		limiter := middleware.NewRateLimiter(s.cfg.Rate.RequestsPerMinute, s.cfg.Rate.Burst)
		s.router.Use(middleware.RateLimit(limiter))
	}
	return nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", s.metrics.Handler())

	// Pages
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/{collection}", s.handleCollectionPage)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/collections", s.handleListCollections)
		r.Get("/stats", s.handleStats)
		r.Get("/activity", s.handleActivity)
		r.With(s.limitHeavy).Get("/activity/export", s.handleActivityExport)
		r.Get("/imports", s.handleImportStatus)

		r.Route("/{collection}", func(r chi.Router) {
			// View events
			r.Get("/", s.handleGetView)
			r.Post("/query", s.handleQuery)
			r.Post("/filter", s.handleFilter)
			r.Post("/sort", s.handleSort)
			r.Post("/page", s.handlePage)
			r.Post("/page-size", s.handlePageSize)
			r.Post("/reset", s.handleReset)

			// Selection
			r.Post("/selection/toggle", s.handleToggle)
			r.Post("/selection/all", s.handleSelectAll)
			r.Post("/selection/none", s.handleSelectNone)

			// Bulk actions
			r.Post("/bulk", s.handleDispatch)
			r.Post("/bulk/confirm", s.handleConfirm)
			r.Post("/bulk/cancel", s.handleCancel)

			r.With(s.limitHeavy).Get("/export", s.handleExport)

			// Mutations
			r.Post("/", s.handleAdd)
			r.Put("/{id}", s.handleUpdate)
			r.With(s.limitHeavy).Post("/import", s.handleImport)
		})
	})
}

// limitHeavy applies the stricter export and import budget.
func (s *Server) limitHeavy(next http.Handler) http.Handler {
	if s.heavy == nil {
		return next
	}
	return middleware.RateLimit(s.heavy)(next)
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; form-action 'self'"

// securityHeaders adds security headers to all responses.
func securityHeaders(csp bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if csp {
				h.Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
