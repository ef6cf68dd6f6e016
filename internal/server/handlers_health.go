package server

import (
	"context"
	"net/http"
	"time"
)

// healthCheckTimeout bounds the backend check made by /health.
const healthCheckTimeout = 5 * time.Second

// handleHealth reports the UI server as up and includes the backend status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := map[string]string{"status": "ok", "backend": "DOWN"}
	h, err := s.backend.Health(ctx)
	switch {
	case err != nil:
		resp["backend_error"] = err.Error()
	case h.Status != "":
		resp["backend"] = h.Status
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
