package httpx

import (
	"log/slog"
	"net/http"

	"github.com/jobpulse/jobs-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs   *service.JobService
	Health *service.HealthService
	Logger *slog.Logger
}

// NewRouter creates and configures a new HTTP router with the standard
// middleware chain (request id, logging, panic recovery).
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	jobHandlers := &JobHandlers{Svc: services.Jobs, Logger: logger}
	registerJobRoutes(mux, jobHandlers)

	if services.Health != nil {
		healthHandlers := &HealthHandlers{Svc: services.Health}
		mux.Handle("GET /api/v1/health", http.HandlerFunc(healthHandlers.GetHealth))
	}
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	handler = RequestID()(handler)
	return handler
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.Handle("GET /api/v1/jobs", http.HandlerFunc(h.ListJobs))
	mux.Handle("POST /api/v1/jobs", http.HandlerFunc(h.CreateJob))
	mux.Handle("GET /api/v1/jobs/{id}", http.HandlerFunc(h.GetJob))
	mux.Handle("PATCH /api/v1/jobs/{id}", http.HandlerFunc(h.UpdateJob))
	mux.Handle("DELETE /api/v1/jobs/{id}", http.HandlerFunc(h.DeleteJob))
}
