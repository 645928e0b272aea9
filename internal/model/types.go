// Package model defines shared data structures.
package model

import "time"

// Config defines runtime display settings.
type Config struct {
	ContentPath  string
	Alphabet     string
	Duration     time.Duration
	Direction    string
	FPS          int
	GlidePerRow  time.Duration
	GlideMax     time.Duration
	RecordVisits bool
}

// VisitsConfig defines filters for the visit report.
type VisitsConfig struct {
	Since *time.Time
	Last  int
}

// Visit captures one run of the portfolio UI.
type Visit struct {
	StartedAt  time.Time
	EndedAt    time.Time
	ContentRef string
	DurationMs int64
}

// SectionStats stores per-section activity for a visit.
type SectionStats struct {
	Section  string
	DwellMs  int64
	Shuffles int
}

// VisitAggregate summarizes a visit for reporting.
type VisitAggregate struct {
	VisitID    int64
	StartedAt  time.Time
	DurationMs int64
	DwellMs    int64
	Shuffles   int
}

// SectionAggregate aggregates section stats across visits.
type SectionAggregate struct {
	Section  string
	Visits   int
	DwellMs  int64
	Shuffles int
}
