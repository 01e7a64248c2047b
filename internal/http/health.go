package http

import "net/http"

// HealthCheckHandler reports the last scheduled store check, or just "ok"
// when no checker runs.
func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Health == nil {
			writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
			return
		}
		last := s.Health.Last()
		if !last.Up {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Store: &last})
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Store: &last})
	}
}
