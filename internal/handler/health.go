package handler

import (
	"net/http"

	"blueprint/internal/httputil"
)

// Root returns the service banner.
// GET /
func Root(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Chat API is running",
		"version": "1.0.0",
	})
}

// Health is the liveness endpoint for monitoring.
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
