// Package api exposes the catalog, quiz attempts and progress over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/store"
)

// Config configures a Server.
type Config struct {
	Catalog     *catalog.Catalog
	Repo        store.EventRepo // nil disables persistence and /progress history
	Threshold   int             // pass threshold; 0 uses quiz.DefaultPassThreshold
	CORSOrigins []string        // empty disables CORS headers
	AttemptTTL  time.Duration
	Now         func() time.Time
	Logger      bool // enable request logging middleware
}

// Server serves the HTTP API.
type Server struct {
	cat       *catalog.Catalog
	repo      store.EventRepo
	threshold int
	now       func() time.Time
	attempts  *Registry
	handler   http.Handler
}

// NewServer builds a Server and its routes.
func NewServer(cfg Config) *Server {
	s := &Server{
		cat:       cfg.Catalog,
		repo:      cfg.Repo,
		threshold: cfg.Threshold,
		now:       cfg.Now,
	}
	if s.threshold <= 0 {
		s.threshold = quiz.DefaultPassThreshold
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.attempts = NewRegistry(cfg.AttemptTTL, s.now)
	s.handler = s.routes(cfg)
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Attempts returns the in-progress attempt registry.
func (s *Server) Attempts() *Registry {
	return s.attempts
}

func (s *Server) routes(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if cfg.Logger {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/courses", func(cr chi.Router) {
		cr.Get("/", s.handleListCourses)
		cr.Get("/{courseID}", s.handleGetCourse)
	})

	r.Route("/attempts", func(ar chi.Router) {
		ar.Post("/", s.handleCreateAttempt)
		ar.Route("/{attemptID}", func(one chi.Router) {
			one.Get("/", s.handleGetAttempt)
			one.Delete("/", s.handleDeleteAttempt)
			one.Post("/select", s.handleSelect)
			one.Post("/advance", s.handleAdvance)
			one.Post("/retry", s.handleRetry)
			one.Post("/finish", s.handleFinish)
		})
	})

	r.Get("/progress", s.handleProgress)
	r.Get("/results", s.handleResults)

	return r
}
