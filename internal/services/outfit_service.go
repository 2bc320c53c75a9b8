// internal/services/outfit_service.go
// Outfit sentence from the LLM, plus the rule table used when it is unavailable.

package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"weather-outfit/internal/llm"
	"weather-outfit/internal/util"
)

var outfitOpts = llm.Options{Temperature: 1.0, MaxTokens: 64, Timeout: 15 * time.Second}

type OutfitService struct {
	LLM llm.Client
}

func outfitPrompt(tempC float64, conditionText string) string {
	return fmt.Sprintf("Current temperature: %s°C.\nWeather condition: %s.\n\n"+
		"Recommend an outfit in ONE short sentence.\nReply in Korean only.",
		strconv.FormatFloat(tempC, 'f', -1, 64), conditionText)
}

// Recommend asks the model for one Korean sentence.
func (s *OutfitService) Recommend(ctx context.Context, tempC float64, conditionText string) (string, error) {
	if strings.TrimSpace(conditionText) == "" {
		return "", util.BadInput("temp(숫자), conditionText(문자)가 필요합니다.")
	}
	out, err := s.LLM.Complete(ctx, outfitPrompt(tempC, conditionText), outfitOpts)
	if err != nil {
		return "", util.Upstream("옷차림 API 오류", err)
	}
	text := strings.TrimSpace(out)
	if text == "" {
		return "", util.Upstream("옷차림 결과를 읽을 수 없습니다.", nil)
	}
	return text, nil
}

type outfitRule struct {
	maxC float64 // inclusive
	text string
}

var outfitRules = []outfitRule{
	{0, "매우 추워요! 두꺼운 패딩, 목도리, 장갑을 꼭 준비하세요."},
	{5, "추운 편이에요. 코트나 패딩, 니트와 목도리를 추천해요."},
	{10, "쌀쌀해요. 자켓이나 얇은 코트, 니트와 긴 바지를 입는 게 좋아요."},
	{17, "선선한 날씨예요. 가벼운 가디건이나 맨투맨, 긴 바지를 추천해요."},
	{23, "딱 활동하기 좋은 날씨! 얇은 긴팔 또는 반팔에 가벼운 아우터 정도면 충분해요."},
	{27, "약간 더운 편이에요. 반팔과 얇은 바지, 시원한 소재의 옷을 추천해요."},
}

const hotOutfit = "많이 더워요! 민소매, 반팔, 반바지 등 최대한 시원한 옷차림과 수분 보충을 잊지 마세요."

// BasicOutfitSuggestion is the fallback table. Total for every input; NaN
// lands in the last bucket.
func BasicOutfitSuggestion(tempC float64) string {
	for _, r := range outfitRules {
		if tempC <= r.maxC {
			return r.text
		}
	}
	return hotOutfit
}

// BasicOutfitSentences lists every sentence the table can produce, coldest first.
func BasicOutfitSentences() []string {
	out := make([]string, 0, len(outfitRules)+1)
	for _, r := range outfitRules {
		out = append(out, r.text)
	}
	return append(out, hotOutfit)
}
