// Package api exposes the practice service over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/wordmath/internal/practice"
)

// PracticeService is the subset of practice.Service the handlers use.
type PracticeService interface {
	Generate(ctx context.Context) (*practice.GeneratedProblem, error)
	Grade(ctx context.Context, sessionID, rawAnswer string) (*practice.GradeResult, error)
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the handler dependencies.
type Server struct {
	Practice PracticeService
	Store    Pinger
	Version  string

	// AllowedOrigins lists origins granted CORS access. "*" allows any.
	AllowedOrigins []string
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	if len(s.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(s.AllowedOrigins))
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/version", s.handleVersion)

	r.Post("/problem", s.handleGenerate)
	r.Post("/problem/submit", s.handleSubmit)

	// Paths and response keys used by the original web frontend.
	r.Post("/api/math-problem", s.handleGenerateWeb)
	r.Post("/api/math-problem/submit", s.handleSubmit)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
