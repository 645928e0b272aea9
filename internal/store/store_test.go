package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tnesh/folio/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "folio.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func insertVisit(t *testing.T, st *Store, start time.Time, sections []model.SectionStats) int64 {
	t.Helper()
	end := start.Add(time.Minute)
	id, err := st.InsertVisit(context.Background(), model.Visit{
		StartedAt:  start,
		EndedAt:    end,
		ContentRef: "default",
		DurationMs: end.Sub(start).Milliseconds(),
	}, sections)
	if err != nil {
		t.Fatalf("insert visit: %v", err)
	}
	return id
}

func TestInsertAndListVisits(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := insertVisit(t, st, base, []model.SectionStats{
		{Section: "hero", DwellMs: 1000, Shuffles: 1},
		{Section: "about", DwellMs: 2500, Shuffles: 2},
	})
	second := insertVisit(t, st, base.Add(time.Hour), nil)

	visits, err := st.ListVisits(context.Background(), model.VisitsConfig{})
	if err != nil {
		t.Fatalf("list visits: %v", err)
	}
	if len(visits) != 2 {
		t.Fatalf("expected 2 visits, got %d", len(visits))
	}
	if visits[0].VisitID != first || visits[1].VisitID != second {
		t.Fatalf("unexpected order: %+v", visits)
	}
	if visits[0].DwellMs != 3500 || visits[0].Shuffles != 3 {
		t.Fatalf("unexpected totals for first visit: %+v", visits[0])
	}
	if visits[1].DwellMs != 0 || visits[1].Shuffles != 0 {
		t.Fatalf("expected empty totals for visit without sections: %+v", visits[1])
	}
	if !visits[0].StartedAt.Equal(base) {
		t.Fatalf("unexpected start time %s", visits[0].StartedAt)
	}
}

func TestListVisitsSince(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	insertVisit(t, st, base, nil)
	later := insertVisit(t, st, base.Add(48*time.Hour), nil)

	since := base.Add(24 * time.Hour)
	visits, err := st.ListVisits(context.Background(), model.VisitsConfig{Since: &since})
	if err != nil {
		t.Fatalf("list visits: %v", err)
	}
	if len(visits) != 1 || visits[0].VisitID != later {
		t.Fatalf("expected only the later visit, got %+v", visits)
	}
}

func TestListSectionTotals(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := insertVisit(t, st, base, []model.SectionStats{
		{Section: "skills", DwellMs: 400, Shuffles: 1},
	})
	b := insertVisit(t, st, base.Add(time.Minute), []model.SectionStats{
		{Section: "skills", DwellMs: 600, Shuffles: 3},
		{Section: "contact", DwellMs: 100},
	})

	totals, err := st.ListSectionTotals(context.Background(), []int64{a, b})
	if err != nil {
		t.Fatalf("section totals: %v", err)
	}
	bySection := map[string]model.SectionAggregate{}
	for _, agg := range totals {
		bySection[agg.Section] = agg
	}
	skills := bySection["skills"]
	if skills.Visits != 2 || skills.DwellMs != 1000 || skills.Shuffles != 4 {
		t.Fatalf("unexpected skills totals: %+v", skills)
	}
	if bySection["contact"].Visits != 1 {
		t.Fatalf("unexpected contact totals: %+v", bySection["contact"])
	}

	empty, err := st.ListSectionTotals(context.Background(), nil)
	if err != nil || empty != nil {
		t.Fatalf("expected nil totals for no ids, got %v %v", empty, err)
	}
}
