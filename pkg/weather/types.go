// pkg/weather/types.go

package weather

// ForecastResult is the normalized view of one forecast.json answer.
type ForecastResult struct {
	LocationName     string
	CurrentTempC     float64
	ConditionText    string
	ConditionCode    int
	ConditionIcon    string
	LocalTime        string // "YYYY-MM-DD H:MM" as sent by the provider
	LocalTimeEpoch   int64
	LastUpdatedEpoch int64
	Daily            []DailyForecast
	Hourly           []HourlySample // flattened across days, chronological
}

type DailyForecast struct {
	Date          string
	AvgTempC      float64
	ConditionIcon string
	ConditionText string
}

type HourlySample struct {
	EpochSeconds  int64
	TempC         float64
	ConditionIcon string
	ConditionText string
}

// NowEpoch is the reference instant for hourly offsets: the observation
// time when the provider sent one, the location's local clock otherwise.
func (f ForecastResult) NowEpoch() int64 {
	if f.LastUpdatedEpoch != 0 {
		return f.LastUpdatedEpoch
	}
	return f.LocalTimeEpoch
}

// wire format

type condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

type forecastResponse struct {
	Location *struct {
		Name           string `json:"name"`
		Country        string `json:"country"`
		LocalTime      string `json:"localtime"`
		LocalTimeEpoch int64  `json:"localtime_epoch"`
	} `json:"location"`
	Current *struct {
		LastUpdatedEpoch int64      `json:"last_updated_epoch"`
		TempC            *float64   `json:"temp_c"`
		Condition        *condition `json:"condition"`
	} `json:"current"`
	Forecast *struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				AvgTempC  float64   `json:"avgtemp_c"`
				Condition condition `json:"condition"`
			} `json:"day"`
			Hour []struct {
				TimeEpoch int64     `json:"time_epoch"`
				TempC     float64   `json:"temp_c"`
				Condition condition `json:"condition"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}
