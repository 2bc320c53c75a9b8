// internal/app/e2e_test.go
// Client -> proxy -> fake upstreams, seluruh alur pencarian

package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"weather-outfit/internal/apiclient"
	apppkg "weather-outfit/internal/app"
	"weather-outfit/internal/config"
	"weather-outfit/internal/history"
	"weather-outfit/internal/orchestrator"
)

type fakeUpstreams struct {
	weather      *httptest.Server
	llm          *httptest.Server
	weatherCalls atomic.Int32
	outfitDown   atomic.Bool
}

func newFakeUpstreams(t *testing.T) *fakeUpstreams {
	t.Helper()
	fixture, err := os.ReadFile("../../pkg/weather/testdata/forecast_seoul.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	f := &fakeUpstreams{}
	f.weather = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.weatherCalls.Add(1)
		if r.URL.Query().Get("q") != "Seoul" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":1006,"message":"No matching location found."}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(fixture)
	}))
	f.llm = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		prompt := ""
		if len(req.Messages) > 0 {
			prompt = req.Messages[0].Content
		}

		answer := "얇은 니트에 가벼운 재킷을 걸치세요."
		switch {
		case strings.Contains(prompt, "city name translator"):
			answer = "INVALID"
			if strings.HasSuffix(prompt, "Input: 서울") {
				answer = "Seoul"
			}
		case f.outfitDown.Load():
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"overloaded"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]string{"role": "assistant", "content": answer}}},
		})
	}))
	t.Cleanup(func() {
		f.weather.Close()
		f.llm.Close()
	})
	return f
}

type lastView struct{ v orchestrator.View }

func (l *lastView) Render(v orchestrator.View) { l.v = v }
func (l *lastView) RenderHistory([]string)     {}

func newStack(t *testing.T, f *fakeUpstreams) (*orchestrator.Orchestrator, *lastView) {
	t.Helper()
	cfg := &config.Config{UpstreamTimeout: 5 * time.Second, CORSAllowOrigin: "*"}
	cfg.Weather.APIKey = "w-key"
	cfg.Weather.BaseURL = f.weather.URL
	cfg.Weather.Days = 3
	cfg.Weather.Lang = "ko"
	cfg.LLM.APIKey = "g-key"
	cfg.LLM.BaseURL = f.llm.URL
	cfg.LLM.Model = "test-model"

	a := apppkg.New(cfg)
	proxy := httptest.NewServer(a.Handler)
	t.Cleanup(func() {
		proxy.Close()
		a.Close()
	})

	client := apiclient.New(proxy.URL, 5*time.Second)
	view := &lastView{}
	o := orchestrator.New(orchestrator.Deps{
		Translator: client,
		Forecaster: client,
		Outfitter:  client,
		History:    history.NewStore(history.NewMemoryStorage(), ""),
		Renderer:   view,
	})
	return o, view
}

func TestEndToEndSearch(t *testing.T) {
	f := newFakeUpstreams(t)
	o, _ := newStack(t, f)

	v, err := o.Search(context.Background(), "서울")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if v.State != orchestrator.StateSuccess || v.TempText != "22 °C" || v.TranslatedCity != "번역된 도시: Seoul" {
		t.Fatalf("view = %+v", v)
	}
	if v.OutfitMode != orchestrator.ModeAI || v.OutfitText != "얇은 니트에 가벼운 재킷을 걸치세요." {
		t.Fatalf("outfit = %q (%s)", v.OutfitText, v.OutfitMode)
	}
	if len(v.Daily) != 2 || v.Daily[0].Label != "오늘" {
		t.Fatalf("daily = %+v", v.Daily)
	}
	if got := o.History(); len(got) != 1 || got[0] != "서울" {
		t.Fatalf("history = %v", got)
	}
}

func TestEndToEndOutfitFallback(t *testing.T) {
	f := newFakeUpstreams(t)
	f.outfitDown.Store(true)
	o, _ := newStack(t, f)

	v, err := o.Search(context.Background(), "서울")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if v.OutfitMode != orchestrator.ModeBasic || !strings.HasPrefix(v.OutfitText, "딱 활동하기 좋은 날씨") {
		t.Fatalf("outfit = %q (%s)", v.OutfitText, v.OutfitMode)
	}
}

func TestEndToEndRejectedCity(t *testing.T) {
	f := newFakeUpstreams(t)
	o, view := newStack(t, f)

	_, err := o.Search(context.Background(), "욕설")
	if err == nil {
		t.Fatalf("expected an error")
	}
	if view.v.State != orchestrator.StateError || view.v.TranslatedCity != "번역된 도시: (불러오기 실패)" {
		t.Fatalf("view = %+v", view.v)
	}
	if f.weatherCalls.Load() != 0 {
		t.Fatalf("weather fetched for a rejected city")
	}
	if len(o.History()) != 0 {
		t.Fatalf("history = %v", o.History())
	}
}
