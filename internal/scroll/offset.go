package scroll

import "github.com/tnesh/folio/internal/ease"

// Edge is a point along an element or the viewport, as a fraction of its
// height: 0 is the top ("start"), 1 the bottom ("end").
type Edge float64

const (
	// Start is the top edge.
	Start Edge = 0
	// Center is the midline.
	Center Edge = 0.5
	// End is the bottom edge.
	End Edge = 1
)

// Intersection says which edge of the target meets which edge of the viewport.
type Intersection struct {
	Target    Edge
	Container Edge
}

// Offset bounds the scroll range that an element's progress runs over.
// Progress is 0 at From and 1 at To.
type Offset struct {
	From Intersection
	To   Intersection
}

var (
	// Transit runs from the element's top entering at the viewport bottom to
	// its bottom leaving at the viewport top.
	Transit = Offset{
		From: Intersection{Target: Start, Container: End},
		To:   Intersection{Target: End, Container: Start},
	}
	// Pinned runs from the element's top reaching the viewport top to its
	// bottom reaching the viewport top.
	Pinned = Offset{
		From: Intersection{Target: Start, Container: Start},
		To:   Intersection{Target: End, Container: Start},
	}
)

// View describes an element's placement in the document and the current
// scroll position, all in the same unit (rows for the terminal UI).
type View struct {
	ScrollY        float64
	ViewportHeight float64
	ElementTop     float64
	ElementHeight  float64
}

// scrollAt returns the scroll position at which the intersection holds.
func (i Intersection) scrollAt(v View) float64 {
	return v.ElementTop + float64(i.Target)*v.ElementHeight - float64(i.Container)*v.ViewportHeight
}

// Progress returns the element's progress through the offset in [0,1].
// When the offset spans no scroll distance the result steps from 0 to 1 at that position.
func (o Offset) Progress(v View) float64 {
	from := o.From.scrollAt(v)
	to := o.To.scrollAt(v)
	if to == from {
		if v.ScrollY < from {
			return 0
		}
		return 1
	}
	return ease.Clamp01((v.ScrollY - from) / (to - from))
}
