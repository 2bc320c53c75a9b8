// pkg/weather/client.go
// Client for the WeatherAPI forecast endpoint (forecast.json).

package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"weather-outfit/internal/util"
)

// Coordinates is a lat/lon pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Query selects a location either by name or by coordinates.
type Query struct {
	City   string
	Coords *Coordinates
}

func CityQuery(city string) Query { return Query{City: city} }

func CoordsQuery(lat, lon float64) Query {
	return Query{Coords: &Coordinates{Lat: lat, Lon: lon}}
}

// Validate requires a non-blank city or a coordinate pair.
func (q Query) Validate() error {
	if strings.TrimSpace(q.City) == "" && q.Coords == nil {
		return util.BadInput("city 또는 lat/lon 쿼리 파라미터가 필요합니다.")
	}
	return nil
}

// String is the provider's q= value. City wins over coordinates.
func (q Query) String() string {
	if c := strings.TrimSpace(q.City); c != "" {
		return c
	}
	if q.Coords != nil {
		return formatFloat(q.Coords.Lat) + "," + formatFloat(q.Coords.Lon)
	}
	return ""
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

type Client struct {
	APIKey  string
	BaseURL string
	Days    int
	Lang    string
	HTTP    *http.Client

	limiter *rate.Limiter
}

// NewClient returns a client asking for 3 days of Korean-localized forecast.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.weatherapi.com/v1"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Days:    3,
		Lang:    "ko",
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// WithRateLimit throttles outgoing calls to rps with the given burst.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return c
}

// FetchForecast returns the provider's JSON body untouched. Non-2xx answers
// and bodies that are not JSON come back as upstream errors carrying the raw
// provider text; the caller decides whether to show it.
func (c *Client) FetchForecast(ctx context.Context, q Query) (json.RawMessage, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, util.Upstream("WeatherAPI 호출 실패", fmt.Errorf("rate limit wait canceled: %w", err))
		}
	}

	days := c.Days
	if days < 3 {
		days = 3
	}
	params := url.Values{}
	params.Set("key", c.APIKey)
	params.Set("q", q.String())
	params.Set("days", strconv.Itoa(days))
	if c.Lang != "" {
		params.Set("lang", c.Lang)
	}
	reqURL := fmt.Sprintf("%s/forecast.json?%s", c.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, util.Upstream("WeatherAPI 호출 실패", fmt.Errorf("new request: %w", err))
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, util.Upstream("WeatherAPI 호출 실패", fmt.Errorf("http do: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, util.Upstream("WeatherAPI 호출 실패", fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, util.Upstream("WeatherAPI 호출 실패", providerError(resp.StatusCode, body))
	}
	if !json.Valid(body) {
		return nil, util.Upstream("WeatherAPI 호출 실패", fmt.Errorf("non-JSON body: %.200s", body))
	}
	return json.RawMessage(body), nil
}

// providerError prefers WeatherAPI's {"error":{"message":...}} shape.
func providerError(status int, body []byte) error {
	var apiErr struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("status %d: %s (code %d)", status, apiErr.Error.Message, apiErr.Error.Code)
	}
	return fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(body)))
}
