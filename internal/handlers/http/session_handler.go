// internal/handlers/http/session_handler.go
package http

import (
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"weather-outfit/internal/middleware"
)

type sessionReq struct {
	Password string `json:"password"`
}

type sessionResp struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"` // epoch seconds
	Subject   string `json:"subject"`
}

// SessionHandler issues a history session. With PassHash set the caller must
// send the matching password.
type SessionHandler struct {
	Sessions *middleware.Sessions
	PassHash string // bcrypt
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.Sessions.Enabled() {
		NotFoundHandler(w, r)
		return
	}
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var in sessionReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	if h.PassHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(h.PassHash), []byte(in.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
	}

	token, sub, exp, err := h.Sessions.Issue()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	writeJSON(w, http.StatusOK, sessionResp{Token: token, ExpiresAt: exp, Subject: sub})
}
