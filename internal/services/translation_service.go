// internal/services/translation_service.go
// Korean place name -> English city name via the LLM, with a content filter.

package services

import (
	"context"
	"strings"
	"time"

	"weather-outfit/internal/llm"
	"weather-outfit/internal/util"
)

// InvalidMarker is what the model answers for unusable input.
const InvalidMarker = "INVALID"

const translatePrompt = "You are a city name translator with content filtering.\n\n" +
	"RULES:\n" +
	"1. If the input contains profanity, slurs, offensive language, inappropriate content, or is NOT a valid city/location name, respond with exactly: " + InvalidMarker + "\n" +
	"2. If the input is a valid Korean city/location name, translate it to English.\n" +
	"3. Answer with English city name only. No extra words, quotes, or explanations.\n\n" +
	"Input: "

var translateOpts = llm.Options{Temperature: 0, MaxTokens: 16, Timeout: 10 * time.Second}

type TranslationService struct {
	LLM llm.Client
}

// Translate returns the English name, util.InvalidInput when the model flags
// the text, or util.Upstream for transport and empty answers.
func (s *TranslationService) Translate(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", util.BadInput("text(번역할 도시명)가 없습니다.")
	}

	out, err := s.LLM.Complete(ctx, translatePrompt+text, translateOpts)
	if err != nil {
		return "", util.Upstream("번역 API 오류", err)
	}
	city := strings.TrimSpace(out)
	if city == "" {
		return "", util.Upstream("번역 결과를 읽을 수 없습니다.", nil)
	}
	if strings.EqualFold(city, InvalidMarker) {
		return "", util.InvalidInput("유효하지 않은 도시명입니다. 올바른 도시 이름을 입력해주세요.")
	}
	return city, nil
}
