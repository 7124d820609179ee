package handlers

import (
	"net/http"
)

// Health is the liveness endpoint probed by deploy checks. It reports the
// service name so a misrouted probe is easy to spot.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "mood-dining-service",
	})
}
