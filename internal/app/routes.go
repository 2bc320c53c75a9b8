// internal/app/routes.go
package app

import (
	"net/http"

	"github.com/gorilla/mux"

	hh "weather-outfit/internal/handlers/http"
	"weather-outfit/internal/middleware"
)

// RegisterRoutes menambahkan semua route HTTP.
func RegisterRoutes(r *mux.Router, d Deps, counter *middleware.RequestCounter) {
	metrics := hh.NewMetricsHandler(counter)

	// --- no prefix ---
	r.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/readyz", hh.HealthHandler).Methods(http.MethodGet)
	r.HandleFunc("/metrics", metrics).Methods(http.MethodGet)

	// --- /api prefix ---
	api := r.PathPrefix("/api").Subrouter()

	// Preflight catch-all; registered first so it wins over every /api route.
	// A MatcherFunc instead of Methods() keeps unknown GETs a 404, not a 405.
	api.MatcherFunc(isPreflight).HandlerFunc(hh.PreflightHandler)

	api.HandleFunc("/healthz", hh.HealthHandler).Methods(http.MethodGet)
	api.HandleFunc("/metrics", metrics).Methods(http.MethodGet)

	// method checks live in the handlers so wrong methods get their own 405 text
	api.Handle("/weather", &hh.WeatherHandler{Weather: d.Weather})
	api.Handle("/translate-city", &hh.TranslateHandler{Translator: d.Translator})
	api.Handle("/outfit", &hh.OutfitHandler{Outfit: d.Outfit})
	api.Handle("/session", &hh.SessionHandler{Sessions: d.Sessions, PassHash: d.PassHash})

	RegisterHistoryRoutes(api, d)
}

func isPreflight(r *http.Request, _ *mux.RouteMatch) bool {
	return r.Method == http.MethodOptions
}
