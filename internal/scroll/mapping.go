// Package scroll maps scroll position to visual parameters.
//
// A Mapping is a piecewise-linear curve from a progress scalar to a value such
// as opacity or a row offset. An Offset turns a scroll position into that
// progress scalar for one element, and a Glide animates jumps between positions.
package scroll

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidConfiguration reports breakpoints or glide settings that cannot be used.
var ErrInvalidConfiguration = errors.New("invalid scroll configuration")

// Breakpoint anchors one end of an interpolation segment.
type Breakpoint struct {
	Progress float64
	Value    float64
}

// Mapping is an immutable piecewise-linear curve. The zero value is not usable;
// build one with NewMapping or Range.
type Mapping struct {
	points []Breakpoint
}

// NewMapping validates points and returns the curve. It needs at least two
// points with strictly increasing progress and finite values.
func NewMapping(points ...Breakpoint) (Mapping, error) {
	if len(points) < 2 {
		return Mapping{}, fmt.Errorf("%w: need at least 2 breakpoints, got %d", ErrInvalidConfiguration, len(points))
	}
	for i, p := range points {
		if !finite(p.Progress) || !finite(p.Value) {
			return Mapping{}, fmt.Errorf("%w: breakpoint %d is not finite", ErrInvalidConfiguration, i)
		}
		if i > 0 && p.Progress <= points[i-1].Progress {
			return Mapping{}, fmt.Errorf("%w: breakpoint %d progress %g does not increase past %g",
				ErrInvalidConfiguration, i, p.Progress, points[i-1].Progress)
		}
	}
	owned := make([]Breakpoint, len(points))
	copy(owned, points)
	return Mapping{points: owned}, nil
}

// Range builds a Mapping from parallel progress and value slices.
func Range(inputs, outputs []float64) (Mapping, error) {
	if len(inputs) != len(outputs) {
		return Mapping{}, fmt.Errorf("%w: %d inputs but %d outputs", ErrInvalidConfiguration, len(inputs), len(outputs))
	}
	points := make([]Breakpoint, len(inputs))
	for i := range inputs {
		points[i] = Breakpoint{Progress: inputs[i], Value: outputs[i]}
	}
	return NewMapping(points...)
}

// MustRange is Range for fixed tables known to be valid. It panics otherwise.
func MustRange(inputs, outputs []float64) Mapping {
	m, err := Range(inputs, outputs)
	if err != nil {
		panic(err)
	}
	return m
}

// Map evaluates the curve at progress. Progress outside the breakpoint range
// clamps to the nearest endpoint value; NaN maps to the first value.
func (m Mapping) Map(progress float64) float64 {
	if len(m.points) == 0 {
		return 0
	}
	first := m.points[0]
	last := m.points[len(m.points)-1]
	if math.IsNaN(progress) || progress <= first.Progress {
		return first.Value
	}
	if progress >= last.Progress {
		return last.Value
	}
	// First breakpoint strictly past progress; the bracketing pair is (hi-1, hi).
	hi := sort.Search(len(m.points), func(i int) bool {
		return m.points[i].Progress > progress
	})
	p0, p1 := m.points[hi-1], m.points[hi]
	if p1.Progress == p0.Progress {
		return p0.Value
	}
	return p0.Value + (p1.Value-p0.Value)*(progress-p0.Progress)/(p1.Progress-p0.Progress)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
