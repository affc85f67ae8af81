package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/liftsight/internal/insightgen"
	"github.com/meltforce/liftsight/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db       *storage.DB
	insights *insightgen.Client
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured. identity is the
// middleware that attributes requests to a user; nil selects the fixed
// local dev identity.
func New(db *storage.DB, insights *insightgen.Client, apiKey string, identity func(http.Handler) http.Handler, log *slog.Logger) *Server {
	s := &Server{
		db:       db,
		insights: insights,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	if identity == nil {
		identity = DevIdentity
	}
	s.routes(identity)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(identity func(http.Handler) http.Handler) {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(identity)

	// Ingest endpoint (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/", s.handleIngest)
	})

	// Dashboard API endpoints (identity middleware handles access)
	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/analytics/muscle-groups", s.handleMuscleGroups)
	s.router.Get("/api/v1/analytics/split", s.handleSplitComparison)
	s.router.Get("/api/v1/analytics/summary", s.handleSummary)
	s.router.Get("/api/v1/insights", s.handleInsights)
	s.router.Get("/api/v1/settings/split", s.handleGetSplitConfig)
	s.router.Put("/api/v1/settings/split", s.handlePutSplitConfig)
	s.router.Get("/api/v1/stats", s.handleStats)
}
