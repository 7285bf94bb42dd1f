package handlers

import (
	"net/http"
)

// Health provides a minimal liveness check endpoint for the engine itself.
func Health(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	res := map[string]string{"status": "ok"}
	writeJSON(w, r, http.StatusOK, res)
}
