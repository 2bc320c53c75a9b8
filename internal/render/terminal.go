// internal/render/terminal.go
// Renderer untuk terminal: tulis View dan daftar riwayat ke io.Writer.

package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"weather-outfit/internal/orchestrator"
)

// Terminal prints views as plain text blocks. With Quiet set only final
// (success/error) views are printed.
type Terminal struct {
	mu    sync.Mutex
	out   io.Writer
	Quiet bool
}

func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) Render(v orchestrator.View) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Quiet && (v.State == orchestrator.StateLoading || v.State == orchestrator.StateIdle) {
		return
	}
	fmt.Fprint(t.out, FormatView(v))
}

func (t *Terminal) RenderHistory(entries []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Quiet {
		return
	}
	fmt.Fprint(t.out, FormatHistory(entries))
}

// FormatView lays out one view; loading views collapse to a single line.
func FormatView(v orchestrator.View) string {
	var b strings.Builder
	if v.State == orchestrator.StateLoading {
		fmt.Fprintf(&b, "… %s\n", v.Title)
		if v.TranslatedCity != "" {
			fmt.Fprintf(&b, "  %s\n", v.TranslatedCity)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "== %s ==\n", v.Title)
	if v.TranslatedCity != "" {
		fmt.Fprintf(&b, "%s\n", v.TranslatedCity)
	}
	if v.LocalTimeText != "" {
		fmt.Fprintf(&b, "%s (%s)\n", v.LocalTimeText, v.Theme)
	}
	fmt.Fprintf(&b, "%s  %s\n", v.TempText, v.Description)
	if v.Particles > 0 {
		fmt.Fprintf(&b, "효과: %s x%d\n", v.Effect, v.Particles)
	}

	if len(v.Hourly) > 0 {
		b.WriteString("\n")
		for _, h := range v.Hourly {
			fmt.Fprintf(&b, "  %-8s %6s  %s\n", h.Label, h.TempText, h.ConditionText)
		}
	}
	if len(v.Daily) > 0 {
		b.WriteString("\n")
		for _, d := range v.Daily {
			fmt.Fprintf(&b, "  %-10s %6s\n", d.Label, d.TempText)
		}
	}

	if v.OutfitText != "" {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", modeLamp(v.OutfitMode), v.OutfitText)
	}
	if v.State == orchestrator.StateError && v.Err != nil {
		fmt.Fprintf(&b, "오류: %v\n", v.Err)
	}
	return b.String()
}

// FormatHistory numbers entries from 0 so they match `history rm <index>`.
func FormatHistory(entries []string) string {
	if len(entries) == 0 {
		return "최근 검색: (없음)\n"
	}
	var b strings.Builder
	b.WriteString("최근 검색:\n")
	for i, e := range entries {
		fmt.Fprintf(&b, "  [%d] %s\n", i, e)
	}
	return b.String()
}

func modeLamp(m orchestrator.OutfitMode) string {
	switch m {
	case orchestrator.ModeAI:
		return "[AI ●  기본 ○]"
	case orchestrator.ModeBasic:
		return "[AI ○  기본 ●]"
	default:
		return "[AI ○  기본 ○]"
	}
}
