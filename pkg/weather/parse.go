// pkg/weather/parse.go

package weather

import (
	"encoding/json"
	"errors"
	"strings"

	"weather-outfit/internal/util"
)

const parseMsg = "날씨 정보를 해석하지 못했습니다."

// ParseForecast validates the shape of a forecast.json body. A call that
// succeeded can still carry an unusable payload; that case is a parse error.
func ParseForecast(raw []byte) (ForecastResult, error) {
	var resp forecastResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ForecastResult{}, util.Parse(parseMsg, err)
	}
	switch {
	case resp.Location == nil:
		return ForecastResult{}, util.Parse(parseMsg, errors.New("missing location"))
	case resp.Current == nil || resp.Current.TempC == nil:
		return ForecastResult{}, util.Parse(parseMsg, errors.New("missing current temperature"))
	case resp.Current.Condition == nil:
		return ForecastResult{}, util.Parse(parseMsg, errors.New("missing current condition"))
	case resp.Forecast == nil || len(resp.Forecast.ForecastDay) == 0:
		return ForecastResult{}, util.Parse(parseMsg, errors.New("missing forecast days"))
	}

	out := ForecastResult{
		LocationName:     resp.Location.Name,
		CurrentTempC:     *resp.Current.TempC,
		ConditionText:    resp.Current.Condition.Text,
		ConditionCode:    resp.Current.Condition.Code,
		ConditionIcon:    resp.Current.Condition.Icon,
		LocalTime:        resp.Location.LocalTime,
		LocalTimeEpoch:   resp.Location.LocalTimeEpoch,
		LastUpdatedEpoch: resp.Current.LastUpdatedEpoch,
		Daily:            make([]DailyForecast, 0, len(resp.Forecast.ForecastDay)),
	}
	for _, d := range resp.Forecast.ForecastDay {
		out.Daily = append(out.Daily, DailyForecast{
			Date:          d.Date,
			AvgTempC:      d.Day.AvgTempC,
			ConditionIcon: d.Day.Condition.Icon,
			ConditionText: d.Day.Condition.Text,
		})
		for _, h := range d.Hour {
			out.Hourly = append(out.Hourly, HourlySample{
				EpochSeconds:  h.TimeEpoch,
				TempC:         h.TempC,
				ConditionIcon: h.Condition.Icon,
				ConditionText: h.Condition.Text,
			})
		}
	}
	return out, nil
}

// IconURL turns the provider's protocol-relative icon path into a URL.
func IconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}
