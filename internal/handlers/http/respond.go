// internal/handlers/http/respond.go
// Helper JSON response; semua error dikirim sebagai {"error": "..."}

package http

import (
	"encoding/json"
	"log"
	"net/http"

	"weather-outfit/internal/middleware"
	"weather-outfit/internal/util"
)

const msgInternal = "서버 내부 오류"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[WARN] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAppError maps err to a status and a user-facing message. The raw
// cause is only logged.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := util.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] req=%s %s %s: %v", middleware.RequestIDFrom(r.Context()), r.Method, r.URL.Path, err)
	}
	writeError(w, status, util.MessageOf(err, msgInternal))
}

// allowMethod answers 405 unless r uses method.
func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, method+"만 지원합니다.")
	return false
}

// NotFoundHandler and MethodNotAllowedHandler keep router-level errors in JSON.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
