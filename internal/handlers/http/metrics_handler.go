// internal/handlers/http/metrics_handler.go
// Handler untuk metrics Prometheus format sederhana

package http

import (
	"fmt"
	"net/http"

	"weather-outfit/internal/middleware"
)

// NewMetricsHandler writes app_up plus the request counters (when given).
func NewMetricsHandler(counter *middleware.RequestCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		fmt.Fprintf(w, "# HELP app_up 1 if the app is up\n# TYPE app_up gauge\napp_up 1\n")
		if counter != nil {
			counter.WriteProm(w)
		}
	}
}
