// internal/handlers/http/outfit_handler.go
// POST /api/outfit {temp, conditionText} -> {outfit}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"weather-outfit/internal/util"
)

type OutfitRecommender interface {
	Recommend(ctx context.Context, tempC float64, conditionText string) (string, error)
}

type OutfitHandler struct {
	Outfit OutfitRecommender
}

type outfitReq struct {
	Temp          *float64 `json:"temp"`
	ConditionText string   `json:"conditionText"`
}

type outfitResp struct {
	Outfit string `json:"outfit"`
}

const msgOutfitInput = "temp(숫자), conditionText(문자)가 필요합니다."

func (h *OutfitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	// a string temp fails decoding, so "22" is rejected like a missing one
	var in outfitReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Temp == nil || strings.TrimSpace(in.ConditionText) == "" {
		writeAppError(w, r, util.BadInput(msgOutfitInput))
		return
	}

	text, err := h.Outfit.Recommend(r.Context(), *in.Temp, in.ConditionText)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, outfitResp{Outfit: text})
}
