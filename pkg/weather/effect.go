// pkg/weather/effect.go

package weather

// Effect is the decorative precipitation overlay for a condition.
type Effect string

const (
	EffectNone  Effect = ""
	EffectRain  Effect = "rain"
	EffectSnow  Effect = "snow"
	EffectSleet Effect = "sleet"
)

// WeatherAPI condition codes per overlay.
var (
	rainCodes  = codeSet(1063, 1150, 1153, 1180, 1183, 1186, 1189, 1192, 1195, 1240, 1243, 1246, 1273, 1276)
	snowCodes  = codeSet(1066, 1114, 1117, 1210, 1213, 1216, 1219, 1222, 1225, 1255, 1258, 1279, 1282)
	sleetCodes = codeSet(1069, 1072, 1168, 1171, 1198, 1201, 1204, 1207, 1237, 1249, 1252)
)

func codeSet(codes ...int) map[int]struct{} {
	m := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return m
}

// EffectForCode classifies a condition code; rain is checked first.
func EffectForCode(code int) Effect {
	if _, ok := rainCodes[code]; ok {
		return EffectRain
	}
	if _, ok := snowCodes[code]; ok {
		return EffectSnow
	}
	if _, ok := sleetCodes[code]; ok {
		return EffectSleet
	}
	return EffectNone
}

// Particles is the overlay density.
func (e Effect) Particles() int {
	switch e {
	case EffectRain:
		return 80
	case EffectSnow:
		return 60
	case EffectSleet:
		return 50
	default:
		return 0
	}
}
