// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tnesh/folio/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for the visit log.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visits (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			content_ref TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS visit_sections (
			visit_id INTEGER NOT NULL,
			section TEXT NOT NULL,
			dwell_ms INTEGER NOT NULL,
			shuffles INTEGER NOT NULL,
			PRIMARY KEY (visit_id, section)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_visits_started_at ON visits(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertVisit stores a finished visit and its per-section activity.
func (s *Store) InsertVisit(ctx context.Context, visit model.Visit, sections []model.SectionStats) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO visits (started_at, ended_at, content_ref, duration_ms) VALUES (?, ?, ?, ?)`,
		visit.StartedAt.Format(time.RFC3339Nano),
		visit.EndedAt.Format(time.RFC3339Nano),
		visit.ContentRef,
		visit.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(sections) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO visit_sections (visit_id, section, dwell_ms, shuffles) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, sec := range sections {
			if _, err := stmt.ExecContext(ctx, id, sec.Section, sec.DwellMs, sec.Shuffles); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListVisits returns visit aggregates filtered by the report config, oldest first.
func (s *Store) ListVisits(ctx context.Context, cfg model.VisitsConfig) ([]model.VisitAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "v.started_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT v.id, v.started_at, v.duration_ms,
			COALESCE(SUM(vs.dwell_ms), 0), COALESCE(SUM(vs.shuffles), 0)
		FROM visits v
		LEFT JOIN visit_sections vs ON vs.visit_id = v.id
		WHERE %s
		GROUP BY v.id
		ORDER BY v.started_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var visits []model.VisitAggregate
	for rows.Next() {
		var agg model.VisitAggregate
		var startedAt string
		if err := rows.Scan(&agg.VisitID, &startedAt, &agg.DurationMs, &agg.DwellMs, &agg.Shuffles); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		agg.StartedAt = parsed
		visits = append(visits, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return visits, nil
}

// ListSectionTotals aggregates section activity across the given visits.
func (s *Store) ListSectionTotals(ctx context.Context, visitIDs []int64) ([]model.SectionAggregate, error) {
	if len(visitIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(visitIDs))
	args := make([]any, len(visitIDs))
	for i, id := range visitIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT section, COUNT(DISTINCT visit_id), SUM(dwell_ms), SUM(shuffles)
		FROM visit_sections
		WHERE visit_id IN (%s)
		GROUP BY section`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SectionAggregate
	for rows.Next() {
		var agg model.SectionAggregate
		if err := rows.Scan(&agg.Section, &agg.Visits, &agg.DwellMs, &agg.Shuffles); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
