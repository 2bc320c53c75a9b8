// internal/orchestrator/view.go
// Render-target model: everything the page used to write into the DOM.

package orchestrator

import "weather-outfit/pkg/weather"

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

// OutfitMode is the two-lamp indicator; ModeNone means neither is lit.
type OutfitMode string

const (
	ModeNone  OutfitMode = ""
	ModeAI    OutfitMode = "ai"
	ModeBasic OutfitMode = "basic"
)

// OutfitRecommendation is always produced, by the model or by the table.
type OutfitRecommendation struct {
	Text   string
	Source OutfitMode
}

type DayView struct {
	Label    string
	TempText string
	IconURL  string
}

type HourView struct {
	Label         string
	IconURL       string
	TempText      string
	ConditionText string
}

type View struct {
	State          State
	Query          string
	Title          string
	TranslatedCity string
	TempText       string
	Description    string
	IconURL        string
	Daily          []DayView
	Hourly         []HourView
	LocalTimeText  string
	Theme          weather.Theme
	Effect         weather.Effect
	Particles      int
	OutfitText     string
	OutfitMode     OutfitMode
	Err            error
}

func (v View) clone() View {
	v.Daily = append([]DayView(nil), v.Daily...)
	v.Hourly = append([]HourView(nil), v.Hourly...)
	return v
}

// Renderer draws views. Calls are serialized by the orchestrator and must
// not call back into it.
type Renderer interface {
	Render(View)
	RenderHistory(entries []string)
}

// Display strings.
const (
	titleLoading       = "번역 + 날씨 정보를 불러오는 중..."
	titleFailed        = "날씨 정보를 가져오지 못했습니다 😢"
	tempPlaceholder    = "-- °C"
	descLoading        = "불러오는 중..."
	descFailed         = "오류 발생"
	outfitLoading      = "옷차림 추천을 준비 중입니다..."
	outfitFailed       = "옷차림 추천을 불러오지 못했습니다."
	translatedLoading  = "번역된 도시: (번역 중...)"
	translatedFailed   = "번역된 도시: (불러오기 실패)"
	translatedTemplate = "번역된 도시: %s"
	emptyInputMessage  = "도시 이름을 입력해 주세요!"
)

var dayLabels = []string{"오늘", "내일", "모레"}
