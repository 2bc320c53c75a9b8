// internal/handlers/http/weather_handler.go
// GET /api/weather?city= | ?lat=&lon=  -> JSON forecast provider apa adanya

package http

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"weather-outfit/internal/util"
	"weather-outfit/pkg/weather"
)

type ForecastFetcher interface {
	FetchForecast(ctx context.Context, q weather.Query) (json.RawMessage, error)
}

type WeatherHandler struct {
	Weather ForecastFetcher
}

const (
	msgWeatherQuery  = "city 또는 lat/lon 쿼리 파라미터가 필요합니다."
	msgWeatherCoords = "lat/lon은 유효한 좌표(숫자)여야 합니다."
)

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q, err := weatherQuery(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	log.Printf("weather request q=%s", q)

	body, err := h.Weather.FetchForecast(r.Context(), q)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// weatherQuery prefers city; coordinates need both values and both numeric.
func weatherQuery(r *http.Request) (weather.Query, error) {
	v := r.URL.Query()
	if city := strings.TrimSpace(v.Get("city")); city != "" {
		return weather.CityQuery(city), nil
	}
	latS, lonS := strings.TrimSpace(v.Get("lat")), strings.TrimSpace(v.Get("lon"))
	if latS == "" || lonS == "" {
		return weather.Query{}, util.BadInput(msgWeatherQuery)
	}
	lat, err1 := strconv.ParseFloat(latS, 64)
	lon, err2 := strconv.ParseFloat(lonS, 64)
	if err1 != nil || err2 != nil || !validCoord(lat, 90) || !validCoord(lon, 180) {
		return weather.Query{}, util.BadInput(msgWeatherCoords)
	}
	return weather.CoordsQuery(lat, lon), nil
}

// validCoord rejects NaN, Inf and values outside ±limit.
func validCoord(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -limit && v <= limit
}
