package visits

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/tnesh/folio/internal/model"
)

// RenderSummary prints totals across visits.
func RenderSummary(w io.Writer, visits []model.VisitAggregate) error {
	if len(visits) == 0 {
		_, err := fmt.Fprintln(w, "No visits recorded.")
		return err
	}
	var totalMs int64
	var shuffles int
	longest := int64(0)
	for _, v := range visits {
		totalMs += v.DurationMs
		shuffles += v.Shuffles
		if v.DurationMs > longest {
			longest = v.DurationMs
		}
	}
	count := int64(len(visits))
	lines := []string{
		"Summary",
		fmt.Sprintf("Visits: %d", len(visits)),
		fmt.Sprintf("Avg duration: %s", formatMs(totalMs/count)),
		fmt.Sprintf("Longest: %s", formatMs(longest)),
		fmt.Sprintf("Shuffles: %d", shuffles),
		fmt.Sprintf("Last visit: %s", visits[len(visits)-1].StartedAt.Local().Format("2006-01-02 15:04")),
	}
	if len(visits) > 1 {
		lines = append(lines, fmt.Sprintf("Duration trend: [%s]", durationTrend(visits)))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderSectionTable prints per-section totals, longest dwell first.
func RenderSectionTable(w io.Writer, sections []model.SectionAggregate) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, "No section activity recorded.")
		return err
	}
	rows := make([]model.SectionAggregate, len(sections))
	copy(rows, sections)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DwellMs == rows[j].DwellMs {
			return rows[i].Section < rows[j].Section
		}
		return rows[i].DwellMs > rows[j].DwellMs
	})

	if _, err := fmt.Fprintln(w, "Sections"); err != nil {
		return err
	}
	headers := []string{"Section", "Visits", "Dwell", "Avg Dwell", "Shuffles"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		avg := int64(0)
		if r.Visits > 0 {
			avg = r.DwellMs / int64(r.Visits)
		}
		tableRows = append(tableRows, []string{
			r.Section,
			fmt.Sprintf("%d", r.Visits),
			formatMs(r.DwellMs),
			formatMs(avg),
			fmt.Sprintf("%d", r.Shuffles),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func formatMs(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(100 * time.Millisecond).String()
}
