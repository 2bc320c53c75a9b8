// internal/handlers/http/cors_handler.go
package http

import "net/http"

// PreflightHandler mengembalikan 200 untuk OPTIONS; header CORS dari middleware.
func PreflightHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
