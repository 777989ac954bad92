package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/briandean03/interview-manager-staging/internal/candidate"
	"github.com/briandean03/interview-manager-staging/internal/config"
	"github.com/briandean03/interview-manager-staging/internal/dashboard"
	"github.com/briandean03/interview-manager-staging/internal/evaluation"
	"github.com/briandean03/interview-manager-staging/internal/schedule"
	"github.com/briandean03/interview-manager-staging/internal/session"
)

type RouterConfig struct {
	Candidates *candidate.Service
	Bookings   *schedule.Service
	Results    *evaluation.Service
	Dashboard  *dashboard.Service
	Sessions   *session.Service
	PgPool     *pgxpool.Pool
	Redis      *redis.Client
	Cfg        config.Config
	Version    string
}

func NewRouter(rc RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(TimeoutMiddleware(rc.Cfg.RequestTimeout))

	// Health endpoints
	health := NewHealthHandler(rc.PgPool, rc.Redis, rc.Cfg.Env, rc.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Auth endpoints, no session required
	r.Post("/auth/signup", signUpHandler(rc.Sessions))
	r.Post("/auth/signin", signInHandler(rc.Sessions))

	// Everything else requires a signed-in HR user
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(rc.Sessions))

		r.Get("/auth/session", currentSessionHandler())
		r.Post("/auth/signout", signOutHandler(rc.Sessions))

		r.Get("/candidates", listCandidatesHandler(rc.Candidates))
		r.Get("/candidates/{id}", getCandidateHandler(rc.Candidates, rc.Bookings))
		r.Patch("/candidates/{id}", editCandidateHandler(rc.Candidates))
		r.Get("/candidates/{id}/evaluations", candidateEvaluationsHandler(rc.Results))
		r.Get("/candidates/{id}/logs", candidateLogsHandler(rc.Results))

		r.Get("/positions", listPositionsHandler(rc.Candidates))

		r.Get("/calendar/week", weekViewHandler(rc.Bookings))
		r.Post("/appointments", bookAppointmentHandler(rc.Bookings))
		r.Put("/appointments/{id}", rescheduleAppointmentHandler(rc.Bookings))
		r.Delete("/appointments/{id}", cancelAppointmentHandler(rc.Bookings))

		r.Get("/blocked-ranges", listBlockedRangesHandler(rc.Bookings))
		r.Post("/blocked-ranges", blockRangeHandler(rc.Bookings))
		r.Delete("/blocked-ranges/{id}", unblockRangeHandler(rc.Bookings))

		r.Get("/evaluations", allEvaluationsHandler(rc.Results))
		r.Get("/execution-logs", allExecutionLogsHandler(rc.Results))

		r.Get("/dashboard/metrics", dashboardMetricsHandler(rc.Dashboard))
	})

	return r
}
