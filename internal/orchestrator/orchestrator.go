// internal/orchestrator/orchestrator.go
// Search flow: translate -> forecast -> render -> history -> outfit (AI, else table).

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"

	"weather-outfit/internal/history"
	"weather-outfit/internal/services"
	"weather-outfit/internal/util"
	"weather-outfit/pkg/weather"
)

// ErrStale is returned by a search that a newer search replaced.
var ErrStale = errors.New("search superseded by a newer one")

type Translator interface {
	TranslateCityName(ctx context.Context, text string) (string, error)
}

type Forecaster interface {
	FetchForecast(ctx context.Context, q weather.Query) (weather.ForecastResult, error)
}

type Outfitter interface {
	RecommendOutfit(ctx context.Context, tempC float64, conditionText string) (string, error)
}

type Deps struct {
	Translator Translator
	Forecaster Forecaster
	Outfitter  Outfitter
	History    *history.Store
	Renderer   Renderer
	// HourOffsets defaults to weather.DefaultHourOffsets.
	HourOffsets []int
}

type Orchestrator struct {
	translator Translator
	forecaster Forecaster
	outfitter  Outfitter
	history    *history.Store
	renderer   Renderer
	offsets    []int

	mu     sync.Mutex
	view   View
	gen    uint64
	cancel context.CancelFunc
}

func New(d Deps) *Orchestrator {
	offsets := d.HourOffsets
	if len(offsets) == 0 {
		offsets = weather.DefaultHourOffsets
	}
	return &Orchestrator{
		translator: d.Translator,
		forecaster: d.Forecaster,
		outfitter:  d.Outfitter,
		history:    d.History,
		renderer:   d.Renderer,
		offsets:    offsets,
		view:       View{State: StateIdle, TempText: tempPlaceholder},
	}
}

// Start loads persisted history and draws it.
func (o *Orchestrator) Start(ctx context.Context) {
	o.history.Load(ctx)
	o.renderHistory()
}

// View returns a snapshot of the current render model.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view.clone()
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view.State
}

// Search runs one lookup. Translation or forecast failures end in StateError
// and are returned; an outfit failure only switches to the fallback table.
// A newer Search cancels this one, which then returns ErrStale without
// touching the view.
func (o *Orchestrator) Search(ctx context.Context, input string) (View, error) {
	userInput := strings.TrimSpace(input)
	if userInput == "" {
		return o.View(), util.BadInput(emptyInputMessage)
	}

	ctx, gen, cancel := o.begin(ctx, userInput)
	defer cancel()

	city, err := o.translator.TranslateCityName(ctx, userInput)
	if err != nil {
		return o.fail(gen, err)
	}
	log.Printf("translated %q -> %q", userInput, city)
	if !o.update(gen, func(v *View) { v.TranslatedCity = fmt.Sprintf(translatedTemplate, city) }) {
		return View{}, ErrStale
	}

	fc, err := o.forecaster.FetchForecast(ctx, weather.CityQuery(city))
	if err != nil {
		return o.fail(gen, err)
	}

	temp := roundHalfUp(fc.CurrentTempC)
	if !o.update(gen, func(v *View) {
		o.applyForecast(v, fc, userInput, temp)
		v.State = StateSuccess
	}) {
		return View{}, ErrStale
	}

	if err := o.history.Add(ctx, userInput); err != nil {
		log.Printf("[WARN] history save: %v", err)
	}
	o.renderHistory()

	rec := o.recommend(ctx, temp, fc.ConditionText)
	if !o.update(gen, func(v *View) {
		v.OutfitText = rec.Text
		v.OutfitMode = rec.Source
	}) {
		return View{}, ErrStale
	}
	return o.View(), nil
}

// SearchHistory re-runs the history entry at index.
func (o *Orchestrator) SearchHistory(ctx context.Context, index int) (View, error) {
	term, err := o.history.Get(index)
	if err != nil {
		return o.View(), err
	}
	return o.Search(ctx, term)
}

func (o *Orchestrator) RemoveHistory(ctx context.Context, index int) error {
	err := o.history.Remove(ctx, index)
	if errors.Is(err, history.ErrNoSuchEntry) {
		return err
	}
	o.renderHistory()
	return err
}

func (o *Orchestrator) ClearHistory(ctx context.Context) error {
	err := o.history.Clear(ctx)
	o.renderHistory()
	return err
}

func (o *Orchestrator) History() []string { return o.history.List() }

// recommend never fails: any model error falls back to the rule table.
func (o *Orchestrator) recommend(ctx context.Context, temp float64, conditionText string) OutfitRecommendation {
	text, err := o.outfitter.RecommendOutfit(ctx, temp, conditionText)
	if err == nil {
		text = strings.TrimSpace(text)
	}
	if err != nil || text == "" {
		if err == nil {
			err = errors.New("empty outfit text")
		}
		log.Printf("[WARN] outfit AI failed, using basic table: %v", err)
		return OutfitRecommendation{Text: services.BasicOutfitSuggestion(temp), Source: ModeBasic}
	}
	return OutfitRecommendation{Text: text, Source: ModeAI}
}

// begin enters loading under a fresh generation and cancels the previous search.
func (o *Orchestrator) begin(parent context.Context, userInput string) (context.Context, uint64, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
	o.gen++
	o.cancel = cancel

	v := &o.view
	v.State = StateLoading
	v.Query = userInput
	v.Title = titleLoading
	clearForecast(v)
	v.Description = descLoading
	v.OutfitText = outfitLoading
	v.OutfitMode = ModeNone
	v.TranslatedCity = translatedLoading
	v.Err = nil
	o.renderer.Render(o.view.clone())

	return ctx, o.gen, cancel
}

// update applies fn and renders if gen is still current.
func (o *Orchestrator) update(gen uint64, fn func(*View)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.gen {
		return false
	}
	fn(&o.view)
	o.renderer.Render(o.view.clone())
	return true
}

func (o *Orchestrator) fail(gen uint64, err error) (View, error) {
	log.Printf("[ERROR] search failed: %v", err)
	ok := o.update(gen, func(v *View) {
		v.State = StateError
		v.Title = titleFailed
		clearForecast(v)
		v.Description = descFailed
		v.OutfitText = outfitFailed
		v.OutfitMode = ModeNone
		v.TranslatedCity = translatedFailed
		v.Err = err
	})
	if !ok {
		return View{}, ErrStale
	}
	return o.View(), err
}

// clearForecast drops everything the previous forecast drew.
func clearForecast(v *View) {
	v.TempText = tempPlaceholder
	v.Daily = nil
	v.Hourly = nil
	v.IconURL = ""
	v.LocalTimeText = ""
	v.Theme = ""
	v.Effect = weather.EffectNone
	v.Particles = 0
}

func (o *Orchestrator) applyForecast(v *View, fc weather.ForecastResult, userInput string, temp float64) {
	v.Title = userInput + "의 날씨"
	v.TempText = tempText(temp)
	v.Description = fc.ConditionText
	v.IconURL = weather.IconURL(fc.ConditionIcon)

	v.Daily = make([]DayView, 0, len(fc.Daily))
	for i, d := range fc.Daily {
		label := d.Date
		if i < len(dayLabels) {
			label = dayLabels[i]
		}
		v.Daily = append(v.Daily, DayView{Label: label, TempText: tempText(roundHalfUp(d.AvgTempC)), IconURL: weather.IconURL(d.ConditionIcon)})
	}

	picks := weather.NearestHours(fc.Hourly, fc.NowEpoch(), o.offsets)
	v.Hourly = make([]HourView, 0, len(picks))
	for _, p := range picks {
		v.Hourly = append(v.Hourly, HourView{
			Label:         fmt.Sprintf("%d시간 후", p.OffsetHours),
			IconURL:       weather.IconURL(p.Sample.ConditionIcon),
			TempText:      tempText(roundHalfUp(p.Sample.TempC)),
			ConditionText: p.Sample.ConditionText,
		})
	}

	v.Effect = weather.EffectForCode(fc.ConditionCode)
	v.Particles = v.Effect.Particles()

	if lt, err := weather.ParseLocalTime(fc.LocalTime); err != nil {
		log.Printf("[WARN] %v", err)
		v.LocalTimeText = ""
	} else {
		v.LocalTimeText = lt.Display()
		v.Theme = lt.Theme()
	}
}

func (o *Orchestrator) renderHistory() {
	entries := o.history.List()
	o.mu.Lock()
	defer o.mu.Unlock()
	o.renderer.RenderHistory(entries)
}

// roundHalfUp rounds .5 toward +Inf (-2.5 -> -2), unlike math.Round.
func roundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }

func tempText(t float64) string { return fmt.Sprintf("%d °C", int(t)) }
