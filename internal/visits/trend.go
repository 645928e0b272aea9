package visits

import (
	"math"
	"strings"

	"github.com/tnesh/folio/internal/model"
)

const sparkChars = " .:-=+*#%@"

// durationTrend renders visit durations, oldest first, as a one-line sparkline.
func durationTrend(visits []model.VisitAggregate) string {
	values := make([]float64, len(visits))
	for i, v := range visits {
		values[i] = float64(v.DurationMs)
	}
	return sparkline(values)
}

func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
