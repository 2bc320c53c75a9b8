// internal/apiclient/client_test.go

package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"weather-outfit/internal/apiclient"
	"weather-outfit/internal/util"
	"weather-outfit/pkg/weather"
)

func newProxy(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL, time.Second)
}

func TestFetchForecastParsesProxyBody(t *testing.T) {
	fixture, err := os.ReadFile("../../pkg/weather/testdata/forecast_seoul.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/weather" || r.URL.Query().Get("city") != "Seoul" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Write(fixture)
	})

	f, err := c.FetchForecast(context.Background(), weather.CityQuery("Seoul"))
	if err != nil {
		t.Fatalf("FetchForecast: %v", err)
	}
	if f.LocationName != "Seoul" || len(f.Hourly) == 0 {
		t.Fatalf("forecast = %+v", f)
	}
}

func TestFetchForecastCoordinatesAndFailure(t *testing.T) {
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") != "35.1" || r.URL.Query().Get("lon") != "129.04" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"WeatherAPI 호출 실패"}`))
	})
	_, err := c.FetchForecast(context.Background(), weather.CoordsQuery(35.1, 129.04))
	if !util.Is(err, util.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestTranslateCityName(t *testing.T) {
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		var in struct{ Text string }
		_ = json.NewDecoder(r.Body).Decode(&in)
		switch in.Text {
		case "서울":
			w.Write([]byte(`{"translatedCity":" Seoul "}`))
		case "바보":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"유효하지 않은 도시명입니다. 올바른 도시 이름을 입력해주세요."}`))
		case "빈값":
			w.Write([]byte(`{"translatedCity":"  "}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"번역 API 오류"}`))
		}
	})
	ctx := context.Background()

	if city, err := c.TranslateCityName(ctx, "서울"); err != nil || city != "Seoul" {
		t.Fatalf("TranslateCityName = %q, %v", city, err)
	}
	_, err := c.TranslateCityName(ctx, "바보")
	if !util.Is(err, util.CodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if msg := util.MessageOf(err, ""); msg != "유효하지 않은 도시명입니다. 올바른 도시 이름을 입력해주세요." {
		t.Fatalf("message = %q", msg)
	}
	if _, err := c.TranslateCityName(ctx, "빈값"); !util.Is(err, util.CodeUpstream) {
		t.Fatalf("expected upstream error on empty translation, got %v", err)
	}
	if _, err := c.TranslateCityName(ctx, "???"); !util.Is(err, util.CodeUpstream) {
		t.Fatalf("expected upstream error on 500, got %v", err)
	}
}

func TestRecommendOutfit(t *testing.T) {
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Temp          float64 `json:"temp"`
			ConditionText string  `json:"conditionText"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Temp != 22 || in.ConditionText != "Clear" {
			t.Errorf("unexpected body %+v", in)
		}
		w.Write([]byte(`{"outfit":"반팔에 가디건을 챙기세요."}`))
	})
	text, err := c.RecommendOutfit(context.Background(), 22, "Clear")
	if err != nil || text != "반팔에 가디건을 챙기세요." {
		t.Fatalf("RecommendOutfit = %q, %v", text, err)
	}
}

func TestRecommendOutfitFailure(t *testing.T) {
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, err := c.RecommendOutfit(context.Background(), 1, "Snow"); !util.Is(err, util.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
