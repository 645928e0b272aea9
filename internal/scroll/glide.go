package scroll

import (
	"fmt"
	"math"
	"time"

	"github.com/tnesh/folio/internal/ease"
)

const (
	// DefaultGlidePerUnit is the glide time per unit of distance.
	DefaultGlidePerUnit = 8 * time.Millisecond
	// DefaultGlideMax caps the length of a single glide.
	DefaultGlideMax = 1500 * time.Millisecond
)

// Glide is an eased jump from one scroll position to another.
type Glide struct {
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
}

// GlideDuration returns how long a jump of distance units takes.
func GlideDuration(distance float64, perUnit, max time.Duration) time.Duration {
	d := time.Duration(math.Abs(distance) * float64(perUnit))
	if d > max {
		return max
	}
	return d
}

// NewGlide plans a glide from one position to another starting at now.
func NewGlide(from, to float64, now time.Time, perUnit, max time.Duration) (Glide, error) {
	if !finite(from) || !finite(to) {
		return Glide{}, fmt.Errorf("%w: glide endpoints must be finite", ErrInvalidConfiguration)
	}
	if perUnit < 0 || max <= 0 {
		return Glide{}, fmt.Errorf("%w: glide timing per-unit=%s max=%s", ErrInvalidConfiguration, perUnit, max)
	}
	return Glide{
		from:     from,
		to:       to,
		start:    now,
		duration: GlideDuration(to-from, perUnit, max),
	}, nil
}

// Target returns the glide's destination.
func (g Glide) Target() float64 {
	return g.to
}

// Duration returns the planned length of the glide.
func (g Glide) Duration() time.Duration {
	return g.duration
}

// At returns the position at now and whether the glide has arrived.
func (g Glide) At(now time.Time) (float64, bool) {
	progress := ease.Progress(float64(now.Sub(g.start)), float64(g.duration))
	if progress >= 1 {
		return g.to, true
	}
	return g.from + (g.to-g.from)*ease.InOutCubic(progress), false
}
