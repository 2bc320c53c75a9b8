// internal/handlers/http/health_handler.go
// Handler sederhana untuk health check

package http

import (
	"net/http"
	"time"
)

var startedAt = time.Now()

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"uptime_sec": int64(time.Since(startedAt).Seconds()),
	})
}
