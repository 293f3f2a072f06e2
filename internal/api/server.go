// Package api implements the HTTP surface: authentication, student
// record CRUD, file imports and report endpoints.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/opengrade/gradebook/internal/auth"
	"github.com/opengrade/gradebook/internal/db"
	"github.com/opengrade/gradebook/internal/ingest"
	"github.com/opengrade/gradebook/internal/logger"
	"github.com/opengrade/gradebook/internal/ratelimit"
	"github.com/opengrade/gradebook/internal/report"
)

// Server holds dependencies for API handlers
type Server struct {
	db             *db.DB
	tokens         *auth.TokenIssuer
	importer       *ingest.Importer
	reports        *report.Generator
	authLimiter    *ratelimit.Limiter
	allowedOrigins []string
	version        string
}

// NewServer creates a new API server
func NewServer(database *db.DB, tokens *auth.TokenIssuer, allowedOrigins []string, version string) *Server {
	return &Server{
		db:             database,
		tokens:         tokens,
		importer:       ingest.NewImporter(database),
		reports:        report.NewGenerator(database),
		authLimiter:    ratelimit.New(5, 10),
		allowedOrigins: allowedOrigins,
		version:        version,
	}
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleRoot)

	// Credential endpoints are rate limited per client IP
	r.Group(func(r chi.Router) {
		r.Use(s.authLimiter.Middleware)
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.tokens.Middleware)

		r.Get("/students", s.handleListStudents)
		r.Post("/students", s.handleAddStudent)
		r.Get("/students/{indexNumber}", s.handleGetStudent)
		r.Put("/students/{indexNumber}/score", s.handleUpdateScore)

		r.Post("/import", s.handleImport)

		r.Get("/reports/summary", s.handleSummaryReport)
		r.Get("/analytics", s.handleAnalytics)

		// Destructive and account-level operations are admin only
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Delete("/students/{indexNumber}", s.handleDeleteStudent)
			r.Get("/users", s.handleListUsers)
		})
	})

	return r
}

// Stop releases background resources held by the server
func (s *Server) Stop() {
	s.authLimiter.Stop()
}

// handleHealth returns server health status, including database reachability
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		logger.Ctx(r.Context()).Error("health check failed", "error", err)
		respondError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// handleRoot returns API info
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"service": "gradebook",
		"version": s.version,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// decodeJSON decodes a request body with a 1 MB cap, rejecting unknown fields
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
