// Package shuffle implements the character-shuffle reveal effect.
//
// An Effect scrambles a string to random glyphs and resolves it back to the
// original one character at a time. It holds no timers: the host calls Tick
// once per frame with the current time and renders the returned string.
package shuffle

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/tnesh/folio/internal/ease"
)

const (
	// DefaultAlphabet is the glyph pool used when none is configured.
	DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	// DefaultDuration is the length of one reveal.
	DefaultDuration = 1200 * time.Millisecond

	// resolveThreshold is the local progress after which a character starts
	// settling on its original glyph.
	resolveThreshold = 0.75
)

// ErrInvalidConfiguration reports an alphabet, text or duration the effect cannot run with.
var ErrInvalidConfiguration = errors.New("invalid shuffle configuration")

// Options configures an Effect. Zero values fall back to the defaults above,
// except Duration which must be positive when set.
type Options struct {
	Alphabet  string
	Direction Direction
	Duration  time.Duration
	Rand      *rand.Rand
}

// DefaultOptions returns the stock alphabet, duration and direction.
func DefaultOptions() Options {
	return Options{
		Alphabet:  DefaultAlphabet,
		Direction: LeftToRight,
		Duration:  DefaultDuration,
	}
}

// Validate reports misconfiguration without building an Effect.
func (o Options) Validate() error {
	if o.Alphabet == "" {
		return fmt.Errorf("%w: alphabet must not be empty", ErrInvalidConfiguration)
	}
	if o.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %s", ErrInvalidConfiguration, o.Duration)
	}
	if o.Direction != LeftToRight && o.Direction != RightToLeft {
		return fmt.Errorf("%w: unknown direction %d", ErrInvalidConfiguration, int(o.Direction))
	}
	return nil
}

// Effect is one shuffle session owned by a single UI element.
type Effect struct {
	alphabet  []rune
	direction Direction
	duration  time.Duration
	rnd       *rand.Rand

	text      []rune
	active    bool
	startedAt time.Time
}

// New validates opts and returns an idle Effect.
func New(opts Options) (*Effect, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Effect{
		alphabet:  []rune(opts.Alphabet),
		direction: opts.Direction,
		duration:  opts.Duration,
		rnd:       rnd,
	}, nil
}

// Start begins a reveal of text at now. Starting again while a reveal of the
// same text is running is a no-op; a different text discards the running one.
func (e *Effect) Start(text string, now time.Time) error {
	if text == "" {
		return fmt.Errorf("%w: text must not be empty", ErrInvalidConfiguration)
	}
	if e.active && string(e.text) == text {
		return nil
	}
	e.text = []rune(text)
	e.active = true
	e.startedAt = now
	return nil
}

// Cancel stops the running reveal. The next Tick returns the original text.
func (e *Effect) Cancel() {
	e.active = false
	e.startedAt = time.Time{}
}

// Active reports whether a reveal is running.
func (e *Effect) Active() bool {
	return e.active
}

// Text returns the source text of the last Start.
func (e *Effect) Text() string {
	return string(e.text)
}

// Duration returns the configured reveal length.
func (e *Effect) Duration() time.Duration {
	return e.duration
}

// Progress returns linear progress of the running reveal at now, or 1 when idle.
func (e *Effect) Progress(now time.Time) float64 {
	if !e.active {
		return 1
	}
	elapsed := now.Sub(e.startedAt)
	return ease.Progress(float64(elapsed), float64(e.duration))
}

// Tick returns the display string at now and whether the reveal has finished.
// Once finished the Effect is idle and further ticks return the original text.
func (e *Effect) Tick(now time.Time) (string, bool) {
	if !e.active {
		return string(e.text), true
	}
	progress := e.Progress(now)
	if progress >= 1 {
		e.Cancel()
		return string(e.text), true
	}
	return e.frame(ease.OutCubic(progress)), false
}

func (e *Effect) frame(eased float64) string {
	n := len(e.text)
	var b strings.Builder
	b.Grow(n)
	for i, r := range e.text {
		if r == ' ' {
			b.WriteRune(r)
			continue
		}
		phase, local := Phase(i, n, eased, e.direction)
		switch phase {
		case Shuffling:
			b.WriteRune(e.randomRune())
		case Resolving:
			if e.rnd.Float64() > (local-resolveThreshold)*4 {
				b.WriteRune(e.randomRune())
			} else {
				b.WriteRune(r)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (e *Effect) randomRune() rune {
	return e.alphabet[e.rnd.Intn(len(e.alphabet))]
}
