// middleware/recover.go

package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
)

// Recover turns a handler panic into a 500 {"error"} body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			log.Printf("[ERROR] panic req=%s %s %s: %v\n%s",
				RequestIDFrom(r.Context()), r.Method, r.URL.Path, rec, debug.Stack())
			writeError(w, http.StatusInternalServerError, "서버 내부 오류")
		}()
		next.ServeHTTP(w, r)
	})
}
