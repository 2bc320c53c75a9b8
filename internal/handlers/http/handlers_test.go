package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	hh "weather-outfit/internal/handlers/http"
	"weather-outfit/internal/history"
	"weather-outfit/internal/middleware"
	"weather-outfit/internal/util"
	"weather-outfit/pkg/weather"
)

type fakeWeather struct {
	calls int
	got   weather.Query
	body  string
	err   error
}

func (f *fakeWeather) FetchForecast(_ context.Context, q weather.Query) (json.RawMessage, error) {
	f.calls++
	f.got = q
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.body), nil
}

type fakeTranslator struct {
	out string
	err error
}

func (f fakeTranslator) Translate(context.Context, string) (string, error) { return f.out, f.err }

type fakeOutfit struct {
	calls int
	out   string
	err   error
}

func (f *fakeOutfit) Recommend(context.Context, float64, string) (string, error) {
	f.calls++
	return f.out, f.err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %q", rec.Body.String())
	}
	return body.Error
}

func TestWeatherRequiresQuery(t *testing.T) {
	fw := &fakeWeather{body: `{}`}
	h := &hh.WeatherHandler{Weather: fw}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("code = %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "city 또는 lat/lon 쿼리 파라미터가 필요합니다." {
		t.Fatalf("error = %q", msg)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather?lat=37.5", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("lat only: code = %d", rec.Code)
	}

	for _, q := range []string{"lat=abc&lon=1", "lat=NaN&lon=Inf", "lat=91&lon=0", "lat=0&lon=-180.5", "lat=1&lon=-Inf"} {
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: code = %d", q, rec.Code)
		}
		if msg := decodeError(t, rec); msg != "lat/lon은 유효한 좌표(숫자)여야 합니다." {
			t.Fatalf("%s: error = %q", q, msg)
		}
	}
	if fw.calls != 0 {
		t.Fatalf("upstream called %d times for invalid input", fw.calls)
	}
}

func TestWeatherPassesThroughBody(t *testing.T) {
	fw := &fakeWeather{body: `{"location":{"name":"Seoul"}}`}
	h := &hh.WeatherHandler{Weather: fw}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather?city=Seoul", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != fw.body {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	if fw.got.City != "Seoul" {
		t.Fatalf("query = %+v", fw.got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather?lat=-90&lon=180", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("boundary coords: code = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather?lat=37.5&lon=127", nil))
	if rec.Code != http.StatusOK || fw.got.Coords == nil || fw.got.Coords.Lat != 37.5 {
		t.Fatalf("coords query = %+v", fw.got)
	}
}

func TestWeatherUpstreamFailureHidesDetails(t *testing.T) {
	fw := &fakeWeather{err: util.Upstream("WeatherAPI 호출 실패", errors.New("status 401: API key is invalid"))}
	h := &hh.WeatherHandler{Weather: fw}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather?city=Seoul", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "WeatherAPI 호출 실패" {
		t.Fatalf("error = %q", msg)
	}
	if strings.Contains(rec.Body.String(), "API key") {
		t.Fatalf("upstream text leaked: %q", rec.Body.String())
	}
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		name   string
		method string
		body   string
		tr     fakeTranslator
		code   int
		want   string
	}{
		{"ok", http.MethodPost, `{"text":"서울"}`, fakeTranslator{out: "Seoul"}, http.StatusOK, ""},
		{"invalid", http.MethodPost, `{"text":"바보"}`, fakeTranslator{err: util.InvalidInput("유효하지 않은 도시명입니다. 올바른 도시 이름을 입력해주세요.")}, http.StatusBadRequest, "유효하지 않은 도시명입니다. 올바른 도시 이름을 입력해주세요."},
		{"missing text", http.MethodPost, `{}`, fakeTranslator{err: util.BadInput("text(번역할 도시명)가 없습니다.")}, http.StatusBadRequest, "text(번역할 도시명)가 없습니다."},
		{"bad json", http.MethodPost, `{`, fakeTranslator{}, http.StatusBadRequest, "text(번역할 도시명)가 없습니다."},
		{"upstream", http.MethodPost, `{"text":"서울"}`, fakeTranslator{err: util.Upstream("번역 API 오류", errors.New("boom"))}, http.StatusInternalServerError, "번역 API 오류"},
		{"wrong method", http.MethodGet, ``, fakeTranslator{}, http.StatusMethodNotAllowed, "POST만 지원합니다."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := &hh.TranslateHandler{Translator: tc.tr}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, "/api/translate-city", strings.NewReader(tc.body)))
			if rec.Code != tc.code {
				t.Fatalf("code = %d, want %d (%s)", rec.Code, tc.code, rec.Body.String())
			}
			if tc.code == http.StatusOK {
				var out struct {
					TranslatedCity string `json:"translatedCity"`
				}
				_ = json.Unmarshal(rec.Body.Bytes(), &out)
				if out.TranslatedCity != "Seoul" {
					t.Fatalf("body = %q", rec.Body.String())
				}
				return
			}
			if msg := decodeError(t, rec); msg != tc.want {
				t.Fatalf("error = %q, want %q", msg, tc.want)
			}
		})
	}
}

func TestOutfitValidation(t *testing.T) {
	for _, body := range []string{`{}`, `{"temp":"22","conditionText":"맑음"}`, `{"temp":22}`, `{"temp":22,"conditionText":"  "}`, `not json`} {
		fo := &fakeOutfit{out: "x"}
		h := &hh.OutfitHandler{Outfit: fo}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/outfit", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: code = %d", body, rec.Code)
		}
		if msg := decodeError(t, rec); msg != "temp(숫자), conditionText(문자)가 필요합니다." {
			t.Fatalf("%s: error = %q", body, msg)
		}
		if fo.calls != 0 {
			t.Fatalf("%s: recommender called", body)
		}
	}
}

func TestOutfitOK(t *testing.T) {
	fo := &fakeOutfit{out: "가벼운 재킷을 입으세요."}
	h := &hh.OutfitHandler{Outfit: fo}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/outfit", strings.NewReader(`{"temp":0,"conditionText":"눈"}`)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"outfit":"가벼운 재킷을 입으세요."`) {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestPreflight(t *testing.T) {
	rec := httptest.NewRecorder()
	hh.PreflightHandler(rec, httptest.NewRequest(http.MethodOptions, "/api/outfit", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestSessionPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	h := &hh.SessionHandler{Sessions: middleware.NewSessions("secret", time.Hour), PassHash: string(hash)}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"password":"nope"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session", strings.NewReader(`{"password":"hunter2"}`)))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"token"`) {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestSessionDisabled(t *testing.T) {
	h := &hh.SessionHandler{Sessions: middleware.NewSessions("", time.Hour)}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/session", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
}

func TestHistoryRoutes(t *testing.T) {
	sessions := middleware.NewSessions("secret", time.Hour)
	token, _, _, err := sessions.Issue()
	if err != nil {
		t.Fatal(err)
	}
	hist := &hh.HistoryHandler{Storage: history.NewMemoryStorage()}
	r := chi.NewRouter()
	r.Route("/api/history", func(cr chi.Router) {
		cr.Use(sessions.Auth)
		hist.Routes(cr)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}
	list := func(rec *httptest.ResponseRecorder) []string {
		var out struct {
			History []string `json:"history"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
		return out.History
	}

	for _, term := range []string{"서울", "부산", "서울"} {
		if rec := do(http.MethodPost, "/api/history", `{"term":"`+term+`"}`); rec.Code != http.StatusOK {
			t.Fatalf("add %s: %d", term, rec.Code)
		}
	}
	if got := list(do(http.MethodGet, "/api/history", "")); strings.Join(got, ",") != "서울,부산" {
		t.Fatalf("history = %v", got)
	}
	if rec := do(http.MethodPost, "/api/history", `{"term":" "}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("blank term: %d", rec.Code)
	}
	if rec := do(http.MethodDelete, "/api/history/7", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("remove out of range: %d", rec.Code)
	}
	if rec := do(http.MethodDelete, "/api/history/x", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("remove non-numeric: %d", rec.Code)
	}
	if got := list(do(http.MethodDelete, "/api/history/0", "")); strings.Join(got, ",") != "부산" {
		t.Fatalf("after remove = %v", got)
	}
	if got := list(do(http.MethodDelete, "/api/history", "")); len(got) != 0 {
		t.Fatalf("after clear = %v", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}
}
