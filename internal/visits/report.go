// Package visits builds and renders the visit log report.
package visits

import (
	"context"

	"github.com/tnesh/folio/internal/model"
)

// Source is the slice of the store the report reads from.
type Source interface {
	ListVisits(ctx context.Context, cfg model.VisitsConfig) ([]model.VisitAggregate, error)
	ListSectionTotals(ctx context.Context, visitIDs []int64) ([]model.SectionAggregate, error)
}

// Report contains precomputed data for visit rendering.
type Report struct {
	Visits   []model.VisitAggregate
	Sections []model.SectionAggregate
}

// BuildReport loads visits matching cfg and aggregates their sections.
func BuildReport(ctx context.Context, src Source, cfg model.VisitsConfig) (Report, error) {
	visits, err := src.ListVisits(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(visits) > cfg.Last {
		visits = visits[len(visits)-cfg.Last:]
	}
	sections, err := src.ListSectionTotals(ctx, visitIDs(visits))
	if err != nil {
		return Report{}, err
	}
	return Report{Visits: visits, Sections: sections}, nil
}

func visitIDs(visits []model.VisitAggregate) []int64 {
	ids := make([]int64, len(visits))
	for i, v := range visits {
		ids[i] = v.VisitID
	}
	return ids
}
