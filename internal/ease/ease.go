// Package ease provides timing curves for frame-based animation.
package ease

import "math"

// Clamp01 limits t to the unit interval. NaN becomes 0.
func Clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// OutCubic decelerates towards the end: 1 - (1-t)^3.
func OutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// InOutCubic accelerates through the first half and decelerates through the second.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Progress returns clamped linear progress of elapsed over total.
// A non-positive total is treated as already complete.
func Progress(elapsed, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return Clamp01(elapsed / total)
}
