// pkg/weather/theme.go

package weather

import (
	"fmt"
	"strconv"
	"strings"
)

// Theme is the time-of-day bucket used for the background.
type Theme string

const (
	ThemeDawn    Theme = "dawn"
	ThemeMorning Theme = "morning"
	ThemeDay     Theme = "day"
	ThemeSunset  Theme = "sunset"
	ThemeEvening Theme = "evening"
	ThemeNight   Theme = "night"
)

// ThemeForHour buckets a 0-23 hour, lower bounds inclusive.
func ThemeForHour(hour int) Theme {
	switch {
	case hour >= 5 && hour < 7:
		return ThemeDawn
	case hour >= 7 && hour < 11:
		return ThemeMorning
	case hour >= 11 && hour < 17:
		return ThemeDay
	case hour >= 17 && hour < 19:
		return ThemeSunset
	case hour >= 19 && hour < 21:
		return ThemeEvening
	default:
		return ThemeNight
	}
}

// LocalTime is the provider's "YYYY-MM-DD H:MM" split into fields. The hour
// is not always zero-padded.
type LocalTime struct {
	Year, Month, Day int
	Hour, Minute     int
}

func ParseLocalTime(s string) (LocalTime, error) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return LocalTime{}, fmt.Errorf("local time %q: missing time part", s)
	}
	d := strings.Split(datePart, "-")
	hm := strings.Split(strings.TrimSpace(timePart), ":")
	if len(d) != 3 || len(hm) != 2 {
		return LocalTime{}, fmt.Errorf("local time %q: unexpected layout", s)
	}

	var lt LocalTime
	fields := []struct {
		dst *int
		src string
		max int
	}{
		{&lt.Year, d[0], 9999}, {&lt.Month, d[1], 12}, {&lt.Day, d[2], 31},
		{&lt.Hour, hm[0], 23}, {&lt.Minute, hm[1], 59},
	}
	for _, f := range fields {
		n, err := strconv.Atoi(f.src)
		if err != nil || n < 0 || n > f.max {
			return LocalTime{}, fmt.Errorf("local time %q: bad field %q", s, f.src)
		}
		*f.dst = n
	}
	return lt, nil
}

func (lt LocalTime) Theme() Theme { return ThemeForHour(lt.Hour) }

// Display renders "현지 시간: 01월 15일 오후 2:30".
func (lt LocalTime) Display() string {
	ampm := "오전"
	if lt.Hour >= 12 {
		ampm = "오후"
	}
	h12 := lt.Hour % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("현지 시간: %02d월 %02d일 %s %d:%02d", lt.Month, lt.Day, ampm, h12, lt.Minute)
}
