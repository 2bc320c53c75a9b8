// pkg/weather/hourly.go

package weather

// DefaultHourOffsets are the "n시간 후" slots shown under the current weather.
var DefaultHourOffsets = []int{1, 2, 3}

// NearestHour picks the first sample at or after target, or the last sample
// when every sample is earlier. ok is false only for an empty slice.
func NearestHour(samples []HourlySample, target int64) (HourlySample, bool) {
	if len(samples) == 0 {
		return HourlySample{}, false
	}
	for _, s := range samples {
		if s.EpochSeconds >= target {
			return s, true
		}
	}
	return samples[len(samples)-1], true
}

// HourPick is the sample chosen for one offset.
type HourPick struct {
	OffsetHours int
	Sample      HourlySample
}

// NearestHours resolves each offset against now (epoch seconds). Samples
// must be chronological.
func NearestHours(samples []HourlySample, now int64, offsets []int) []HourPick {
	if len(samples) == 0 {
		return nil
	}
	picks := make([]HourPick, 0, len(offsets))
	for _, off := range offsets {
		s, _ := NearestHour(samples, now+int64(off)*3600)
		picks = append(picks, HourPick{OffsetHours: off, Sample: s})
	}
	return picks
}
