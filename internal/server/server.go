package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/setlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *tracker.Service
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(svc *tracker.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/healthz", s.handleHealthz)

	// Read endpoints
	s.router.Get("/api/v1/date", s.handleGetDate)
	s.router.Get("/api/v1/dates", s.handleLoggedDates)
	s.router.Get("/api/v1/days/{date}", s.handleGetDay)
	s.router.Get("/api/v1/days/{date}/totals", s.handleDayTotals)
	s.router.Get("/api/v1/days/{date}/workouts/{typeID}/totals", s.handleWorkoutTotals)
	s.router.Get("/api/v1/days/{date}/workouts/{typeID}/progression", s.handleProgression)
	s.router.Get("/api/v1/days/{date}/workouts/{typeID}/exercise-progression", s.handleExerciseProgression)
	s.router.Get("/api/v1/types", s.handleListTypes)

	// Mutation endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Put("/api/v1/date", s.handleSetDate)
		r.Put("/api/v1/days/{date}/types", s.handleSetDayTypes)
		r.Post("/api/v1/workouts/{typeID}/exercises", s.handleAddExercise)
		r.Put("/api/v1/workouts/{typeID}/exercises/{exerciseID}", s.handleUpdateExercise)
		r.Delete("/api/v1/workouts/{typeID}/exercises/{exerciseID}", s.handleRemoveExercise)
		r.Delete("/api/v1/workouts/{typeID}", s.handleRemoveWorkout)
		r.Post("/api/v1/types", s.handleAddType)
		r.Put("/api/v1/types/{id}/selected", s.handleSetTypeSelected)
		r.Delete("/api/v1/types/{id}", s.handleRemoveType)
		r.Post("/api/v1/types/reset", s.handleResetTypes)
	})
}
