package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/mattn/go-runewidth"

	"github.com/tnesh/folio/internal/content"
)

const (
	maxCardWidth     = 38
	minCardWidth     = 8
	cardGap          = 2
	maxCardDescLines = 4
	// cardLift is the row headroom above and below cards for their vertical parallax.
	cardLift = 2
	// columnsPerPinRow is how many strip columns one row of scrolling reveals.
	columnsPerPinRow = 3

	springStiffness = 150.0
	springDamping   = 30.0
	springMass      = 0.5
)

// strip is the horizontally scrolling row of project cards.
type strip struct {
	cards      [][]string
	cardWidth  int
	cardHeight int
	viewWidth  int
}

func buildStrip(projects []content.Project, viewWidth int) strip {
	cardWidth := max(min(maxCardWidth, viewWidth), minCardWidth)
	st := strip{cardWidth: cardWidth, viewWidth: viewWidth}
	inner := max(cardWidth-4, 1)
	for _, p := range projects {
		body := []string{strings.ToUpper(p.Title), ""}
		desc := wrapText(p.Description, inner)
		if len(desc) > maxCardDescLines {
			desc = desc[:maxCardDescLines]
			desc[len(desc)-1] = runewidth.Truncate(desc[len(desc)-1]+" …", inner, "…")
		}
		body = append(body, desc...)
		if len(p.Tags) > 0 {
			body = append(body, "")
			body = append(body, wrapText(formatTags(p.Tags), inner)...)
		}
		if p.Link != "" {
			body = append(body, "", runewidth.Truncate("→ "+p.Link, inner, "…"))
		}
		st.cards = append(st.cards, body)
		st.cardHeight = max(st.cardHeight, len(body)+2)
	}
	for i, body := range st.cards {
		st.cards[i] = frameCard(body, cardWidth, st.cardHeight)
	}
	return st
}

func formatTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "[" + tag + "]"
	}
	return strings.Join(parts, " ")
}

func frameCard(body []string, width, height int) []string {
	inner := max(width-4, 1)
	out := make([]string, 0, height)
	out = append(out, "┌"+strings.Repeat("─", width-2)+"┐")
	for i := 0; i < height-2; i++ {
		text := ""
		if i < len(body) {
			text = body[i]
		}
		out = append(out, "│ "+runewidth.FillRight(runewidth.Truncate(text, inner, ""), inner)+" │")
	}
	out = append(out, "└"+strings.Repeat("─", width-2)+"┘")
	return out
}

// width is the full strip width in cells.
func (s strip) width() int {
	if len(s.cards) == 0 {
		return 0
	}
	return len(s.cards)*s.cardWidth + (len(s.cards)-1)*cardGap
}

// overflow is how far the strip extends past the view.
func (s strip) overflow() int {
	return max(s.width()-s.viewWidth, 0)
}

func (s strip) height() int {
	if len(s.cards) == 0 {
		return 0
	}
	return s.cardHeight + 2*cardLift
}

func (s strip) pinRows() int {
	return (s.overflow() + columnsPerPinRow - 1) / columnsPerPinRow
}

// row renders strip row r scrolled left by shift columns. lift returns the
// vertical offset for card i.
func (s strip) row(r, shift int, lift func(i int) int) string {
	var b strings.Builder
	for i, card := range s.cards {
		if i > 0 {
			b.WriteString(strings.Repeat(" ", cardGap))
		}
		idx := r - cardLift - lift(i)
		if idx >= 0 && idx < len(card) {
			b.WriteString(card[idx])
		} else {
			b.WriteString(strings.Repeat(" ", s.cardWidth))
		}
	}
	return strings.TrimRight(cutColumns(b.String(), shift, s.viewWidth), " ")
}

// springFollower eases a value towards a moving target the way a damped
// spring would, one frame at a time.
type springFollower struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func newSpringFollower(fps int) springFollower {
	// Convert stiffness/damping/mass into angular frequency and damping ratio.
	omega := math.Sqrt(springStiffness / springMass)
	zeta := springDamping / (2 * math.Sqrt(springStiffness*springMass))
	return springFollower{spring: harmonica.NewSpring(harmonica.FPS(fps), omega, zeta)}
}

func (f *springFollower) step(target float64) float64 {
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, target)
	return f.pos
}

func (f *springFollower) snap(target float64) {
	f.pos = target
	f.vel = 0
}
