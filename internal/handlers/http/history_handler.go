// internal/handlers/http/history_handler.go
// Riwayat pencarian per session (chi subrouter di bawah /api/history)

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"weather-outfit/internal/history"
	"weather-outfit/internal/middleware"
)

type HistoryHandler struct {
	Storage history.Storage

	// one writer at a time; each request rebuilds the owner's Store
	mu sync.Mutex
}

type historyReq struct {
	Term string `json:"term"`
}

type historyResp struct {
	History []string `json:"history"`
}

// Routes mounts GET/POST/DELETE / and DELETE /{index} on r.
func (h *HistoryHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Delete("/", h.clear)
	r.Delete("/{index}", h.remove)
}

func (h *HistoryHandler) store(r *http.Request) *history.Store {
	s := history.NewStore(h.Storage, history.Key(middleware.SubjectFrom(r.Context())))
	s.Load(r.Context())
	return s
}

func (h *HistoryHandler) list(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, historyResp{History: h.store(r).List()})
}

func (h *HistoryHandler) add(w http.ResponseWriter, r *http.Request) {
	var in historyReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Term) == "" {
		writeError(w, http.StatusBadRequest, "term이 필요합니다.")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.store(r)
	if err := s.Add(r.Context(), in.Term); err != nil {
		writeError(w, http.StatusInternalServerError, "기록을 저장하지 못했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, historyResp{History: s.List()})
}

func (h *HistoryHandler) remove(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index는 숫자여야 합니다.")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.store(r)
	if err := s.Remove(r.Context(), idx); err != nil {
		if errors.Is(err, history.ErrNoSuchEntry) {
			writeError(w, http.StatusNotFound, "해당 기록이 없습니다.")
			return
		}
		writeError(w, http.StatusInternalServerError, "기록을 저장하지 못했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, historyResp{History: s.List()})
}

func (h *HistoryHandler) clear(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.store(r)
	if err := s.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "기록을 저장하지 못했습니다.")
		return
	}
	writeJSON(w, http.StatusOK, historyResp{History: s.List()})
}
