// internal/app/routes_history.go
package app

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/mux"

	hh "weather-outfit/internal/handlers/http"
)

// RegisterHistoryRoutes mounts the chi history router under /api/history.
// chi sees the full path because mux does not strip prefixes.
func RegisterHistoryRoutes(api *mux.Router, d Deps) {
	hist := &hh.HistoryHandler{Storage: d.HistoryStorage}

	cr := chi.NewRouter()
	cr.NotFound(hh.NotFoundHandler)
	cr.MethodNotAllowed(hh.MethodNotAllowedHandler)
	cr.Route("/api/history", func(sr chi.Router) {
		sr.Use(d.Sessions.Auth)
		hist.Routes(sr)
	})

	api.PathPrefix("/history").Handler(cr)
}
