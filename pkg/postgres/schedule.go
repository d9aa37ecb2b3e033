package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// InsertScheduleRun stores a run and its assignments in one transaction
func (d *DB) InsertScheduleRun(ctx context.Context, run *db.ScheduleRun, assignments []db.ScheduleAssignment) error {
	runID, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("invalid run id %q: %w", run.ID, err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO schedule_run (id, seed_key, year, month, weekday, source, people_count, date_count, shortfall_count, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, runID, run.SeedKey, run.Year, run.Month, run.Weekday, run.Source,
		run.PeopleCount, run.DateCount, run.ShortfallCount, run.GeneratedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert schedule run: %w", err)
	}

	if len(assignments) > 0 {
		rows := make([][]any, 0, len(assignments))
		for _, a := range assignments {
			date, err := time.Parse("2006-01-02", a.Date)
			if err != nil {
				return fmt.Errorf("invalid assignment date %q: %w", a.Date, err)
			}
			if a.RunID != run.ID {
				return fmt.Errorf("assignment belongs to run %q, not %q", a.RunID, run.ID)
			}
			rows = append(rows, []any{runID, date, a.Role, a.Position, a.Name})
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"schedule_assignment"},
			[]string{"run_id", "shift_date", "role", "position", "name"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to insert schedule assignments: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetScheduleRuns retrieves all archived runs, newest first
func (d *DB) GetScheduleRuns(ctx context.Context) ([]db.ScheduleRun, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, seed_key, year, month, weekday, source, people_count, date_count, shortfall_count, generated_at
		FROM schedule_run
		ORDER BY generated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule runs: %w", err)
	}
	defer rows.Close()

	var runs []db.ScheduleRun
	for rows.Next() {
		var r db.ScheduleRun
		if err := rows.Scan(&r.ID, &r.SeedKey, &r.Year, &r.Month, &r.Weekday, &r.Source,
			&r.PeopleCount, &r.DateCount, &r.ShortfallCount, &r.GeneratedAt); err != nil {
			return nil, fmt.Errorf("failed to scan schedule run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule runs: %w", err)
	}

	return runs, nil
}
