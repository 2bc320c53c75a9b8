// internal/handlers/http/translate_handler.go
// POST /api/translate-city {text} -> {translatedCity}

package http

import (
	"context"
	"encoding/json"
	"net/http"

	"weather-outfit/internal/util"
)

type CityTranslator interface {
	Translate(ctx context.Context, text string) (string, error)
}

type TranslateHandler struct {
	Translator CityTranslator
}

type translateReq struct {
	Text string `json:"text"`
}

type translateResp struct {
	TranslatedCity string `json:"translatedCity"`
}

const msgTranslateMissing = "text(번역할 도시명)가 없습니다."

func (h *TranslateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var in translateReq
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeAppError(w, r, util.BadInput(msgTranslateMissing))
		return
	}

	city, err := h.Translator.Translate(r.Context(), in.Text)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, translateResp{TranslatedCity: city})
}
