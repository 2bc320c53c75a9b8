// internal/apiclient/client.go
// Client for the proxy endpoints; what the browser page used fetch() for.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-outfit/internal/util"
	"weather-outfit/pkg/weather"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// FetchForecast calls GET /api/weather and parses the provider payload.
func (c *Client) FetchForecast(ctx context.Context, q weather.Query) (weather.ForecastResult, error) {
	if err := q.Validate(); err != nil {
		return weather.ForecastResult{}, err
	}
	params := url.Values{}
	if city := strings.TrimSpace(q.City); city != "" {
		params.Set("city", city)
	} else {
		params.Set("lat", strconv.FormatFloat(q.Coords.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(q.Coords.Lon, 'f', -1, 64))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/weather?"+params.Encode(), nil)
	if err != nil {
		return weather.ForecastResult{}, util.Upstream("날씨 정보를 가져오지 못했습니다.", err)
	}
	body, status, err := c.do(req)
	if err != nil {
		return weather.ForecastResult{}, util.Upstream("날씨 정보를 가져오지 못했습니다.", err)
	}
	if status != http.StatusOK {
		return weather.ForecastResult{}, util.Upstream("날씨 정보를 가져오지 못했습니다.", statusError(status, body))
	}
	return weather.ParseForecast(body)
}

// TranslateCityName calls POST /api/translate-city. A 400 from the proxy is
// the translator rejecting the input.
func (c *Client) TranslateCityName(ctx context.Context, text string) (string, error) {
	var out struct {
		TranslatedCity string `json:"translatedCity"`
	}
	status, body, err := c.postJSON(ctx, "/api/translate-city", map[string]string{"text": text}, &out)
	if err != nil {
		return "", util.Upstream("번역 API 호출 실패", err)
	}
	switch {
	case status == http.StatusBadRequest:
		return "", util.InvalidInput(proxyMessage(body, "유효하지 않은 도시명입니다."))
	case status != http.StatusOK:
		return "", util.Upstream("번역 API 호출 실패", statusError(status, body))
	}
	city := strings.TrimSpace(out.TranslatedCity)
	if city == "" {
		return "", util.Upstream("번역 결과를 읽을 수 없습니다.", nil)
	}
	return city, nil
}

// RecommendOutfit calls POST /api/outfit.
func (c *Client) RecommendOutfit(ctx context.Context, tempC float64, conditionText string) (string, error) {
	var out struct {
		Outfit string `json:"outfit"`
	}
	in := map[string]any{"temp": tempC, "conditionText": conditionText}
	status, body, err := c.postJSON(ctx, "/api/outfit", in, &out)
	if err != nil {
		return "", util.Upstream("옷차림 추천 API 호출 실패", err)
	}
	if status != http.StatusOK {
		return "", util.Upstream("옷차림 추천 API 호출 실패", statusError(status, body))
	}
	text := strings.TrimSpace(out.Outfit)
	if text == "" {
		return "", util.Upstream("옷차림 추천 결과를 읽을 수 없습니다.", nil)
	}
	return text, nil
}

// postJSON decodes into out only on 200.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) (int, []byte, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return 0, nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return 0, nil, err
	}
	if status == http.StatusOK {
		if err := json.Unmarshal(body, out); err != nil {
			return status, body, fmt.Errorf("decode response: %w", err)
		}
	}
	return status, body, nil
}

func (c *Client) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

func proxyMessage(body []byte, def string) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return def
}

func statusError(status int, body []byte) error {
	return fmt.Errorf("proxy status %d: %s", status, proxyMessage(body, strings.TrimSpace(string(body))))
}
