package ease

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCurve reports control points that do not describe a timing function.
var ErrInvalidCurve = errors.New("invalid bezier curve")

const (
	newtonIterations = 8
	newtonMinSlope   = 1e-3
	subdivisionEps   = 1e-7
	subdivisionIters = 20
)

// Bezier is a CSS-style cubic timing curve anchored at (0,0) and (1,1).
type Bezier struct {
	x1, y1, x2, y2 float64
}

// EntranceCurve is the curve sections use when they slide into view.
var EntranceCurve = Bezier{x1: 0.22, y1: 1, x2: 0.36, y2: 1}

// CubicBezier validates control points and returns the curve.
// The x coordinates must lie in [0,1] so the curve is a function of time.
func CubicBezier(x1, y1, x2, y2 float64) (Bezier, error) {
	for _, v := range []float64{x1, y1, x2, y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Bezier{}, fmt.Errorf("%w: non-finite control point", ErrInvalidCurve)
		}
	}
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return Bezier{}, fmt.Errorf("%w: x1=%g x2=%g must be within [0,1]", ErrInvalidCurve, x1, x2)
	}
	return Bezier{x1: x1, y1: y1, x2: x2, y2: y2}, nil
}

// At returns the curve's y for time x.
func (b Bezier) At(x float64) float64 {
	x = Clamp01(x)
	if x == 0 || x == 1 {
		return x
	}
	if b.x1 == b.y1 && b.x2 == b.y2 {
		return x
	}
	return sample(b.solveT(x), b.y1, b.y2)
}

func (b Bezier) solveT(x float64) float64 {
	t := x
	for i := 0; i < newtonIterations; i++ {
		slope := slopeAt(t, b.x1, b.x2)
		if math.Abs(slope) < newtonMinSlope {
			break
		}
		diff := sample(t, b.x1, b.x2) - x
		if math.Abs(diff) < subdivisionEps {
			return t
		}
		t -= diff / slope
	}
	if t >= 0 && t <= 1 && math.Abs(sample(t, b.x1, b.x2)-x) < subdivisionEps {
		return t
	}

	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < subdivisionIters; i++ {
		cur := sample(t, b.x1, b.x2)
		if math.Abs(cur-x) < subdivisionEps {
			break
		}
		if cur < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}

// sample evaluates one axis of the curve with endpoints fixed at 0 and 1.
func sample(t, p1, p2 float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	c := 3 * p1
	return ((a*t+b)*t + c) * t
}

func slopeAt(t, p1, p2 float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	c := 3 * p1
	return 3*a*t*t + 2*b*t + c
}
