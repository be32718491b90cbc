package httpx

import (
	"io"
	"net/http"

	"github.com/jobpulse/jobs-api/internal/service"
)

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for readiness/liveness checks.
// It does not touch dependencies; /api/v1/health does.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// HealthHandlers provides the dependency-probing health endpoint.
type HealthHandlers struct {
	Svc *service.HealthService
}

// GetHealth handles GET /api/v1/health. A degraded report is still rendered
// in full, with 503 signalling load balancers to drain.
func (h *HealthHandlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	report := h.Svc.Check(r.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, report)
}
