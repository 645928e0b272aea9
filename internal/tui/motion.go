package tui

import (
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tnesh/folio/internal/ease"
	"github.com/tnesh/folio/internal/scroll"
)

var (
	heroOpacity     = scroll.MustRange([]float64{0, 0.4}, []float64{1, 0})
	aboutLift       = scroll.MustRange([]float64{0, 1}, []float64{3, -3})
	aboutOpacity    = scroll.MustRange([]float64{0, 0.3, 0.7, 1}, []float64{0, 1, 1, 0})
	projectCardLift = scroll.MustRange([]float64{0, 1}, []float64{cardLift, -cardLift})
	skillsOpacity   = scroll.MustRange([]float64{0, 0.3, 0.7, 1}, []float64{0, 1, 1, 0})
)

const (
	// revealThreshold is the transit progress at which a section counts as in view.
	revealThreshold  = 0.1
	entranceDuration = 800 * time.Millisecond
	entranceShift    = 8
	barDelay         = 300 * time.Millisecond
	barDuration      = time.Second
	caretPeriod      = time.Second
)

// sectionFrame is the per-frame visual state of one section.
type sectionFrame struct {
	transit   float64
	pinned    float64
	screenTop int
	opacity   float64
	lift      int
	reveal    float64
	barFill   float64
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

// entrance returns the eased one-shot entrance progress for a section revealed at.
func entrance(revealedAt, now time.Time) float64 {
	if revealedAt.IsZero() {
		return 0
	}
	return ease.EntranceCurve.At(ease.Progress(float64(now.Sub(revealedAt)), float64(entranceDuration)))
}

func barFill(revealedAt, now time.Time) float64 {
	if revealedAt.IsZero() {
		return 0
	}
	elapsed := now.Sub(revealedAt) - barDelay
	return ease.OutCubic(ease.Progress(float64(elapsed), float64(barDuration)))
}

const (
	backgroundHex = "#000000"
	foregroundHex = "#F0F0F0"
	bodyHex       = "#D0D0D0"
	mutedHex      = "#8C8C8C"
	accentHex     = "#C89A3A"
	navHex        = "#B0B0B0"
)

var background = mustHex(backgroundHex)

func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// fade blends hex towards the background so that alpha 0 is invisible.
func fade(hex string, alpha float64) lipgloss.Color {
	alpha = ease.Clamp01(alpha)
	if alpha >= 1 {
		return lipgloss.Color(hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(background.BlendRgb(c, alpha).Clamped().Hex())
}

func kindColor(k lineKind) string {
	switch k {
	case kindHeading, kindName:
		return foregroundHex
	case kindEyebrow, kindMuted:
		return mutedHex
	case kindCardTitle, kindActions:
		return accentHex
	default:
		return bodyHex
	}
}

func styleFor(k lineKind, alpha float64, focused bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(fade(kindColor(k), alpha))
	switch k {
	case kindHeading, kindName:
		style = style.Bold(true)
	case kindCardTitle:
		style = style.Bold(true)
	}
	if focused {
		style = style.Underline(true)
	}
	return style
}
