// internal/middleware/session_jwt.go
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"weather-outfit/internal/util"
)

// Sessions issues and checks HS256 tokens whose subject owns a history list.
type Sessions struct {
	Secret []byte
	TTL    time.Duration
	Clock  util.Clock
}

func NewSessions(secret string, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{Secret: []byte(secret), TTL: ttl, Clock: util.RealClock{}}
}

func (s *Sessions) Enabled() bool { return s != nil && len(s.Secret) > 0 }

// Issue membuat token baru dengan subject uuid acak.
func (s *Sessions) Issue() (token, subject string, exp int64, err error) {
	if !s.Enabled() {
		return "", "", 0, errors.New("session secret not configured")
	}
	now := s.Clock.Now()
	subject = util.NewID()
	exp = now.Add(s.TTL).Unix()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(time.Unix(exp, 0)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(s.Secret)
	return token, subject, exp, err
}

// Parse validates token and returns its subject.
func (s *Sessions) Parse(tokenStr string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.Clock.Now))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if !util.ValidID(claims.Subject) {
		return "", jwt.ErrTokenInvalidSubject
	}
	return claims.Subject, nil
}

// Auth requires a valid Bearer token and stores its subject in the context.
func (s *Sessions) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Enabled() {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		sub, err := s.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		ctx := context.WithValue(r.Context(), subjectKey, sub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SubjectFrom returns the session subject set by Auth.
func SubjectFrom(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey).(string)
	return sub
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
