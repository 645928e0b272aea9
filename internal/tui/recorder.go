package tui

import (
	"context"
	"time"

	"github.com/tnesh/folio/internal/model"
)

// VisitSink persists a finished visit.
type VisitSink interface {
	InsertVisit(ctx context.Context, visit model.Visit, sections []model.SectionStats) (int64, error)
}

// visitRecorder accumulates how long each section was centred and how often
// its shuffle targets fired.
type visitRecorder struct {
	started  time.Time
	last     time.Time
	dwell    [sectionCount]time.Duration
	shuffles [sectionCount]int
}

func newVisitRecorder(now time.Time) visitRecorder {
	return visitRecorder{started: now, last: now}
}

func (r *visitRecorder) observe(now time.Time, centred sectionID) {
	if dt := now.Sub(r.last); dt > 0 {
		r.dwell[centred] += dt
	}
	r.last = now
}

func (r *visitRecorder) shuffled(s sectionID) {
	r.shuffles[s]++
}

func (r *visitRecorder) finish(now time.Time, ref string) (model.Visit, []model.SectionStats) {
	visit := model.Visit{
		StartedAt:  r.started,
		EndedAt:    now,
		ContentRef: ref,
		DurationMs: now.Sub(r.started).Milliseconds(),
	}
	var sections []model.SectionStats
	for i := sectionID(0); i < sectionCount; i++ {
		if r.dwell[i] == 0 && r.shuffles[i] == 0 {
			continue
		}
		sections = append(sections, model.SectionStats{
			Section:  i.String(),
			DwellMs:  r.dwell[i].Milliseconds(),
			Shuffles: r.shuffles[i],
		})
	}
	return visit, sections
}
