package db

import "context"

// ScheduleArchive stores generated schedules as an audit trail.
// Archived runs are never read back into a new run's rotation state.
type ScheduleArchive interface {
	InsertScheduleRun(ctx context.Context, run *ScheduleRun, assignments []ScheduleAssignment) error
	GetScheduleRuns(ctx context.Context) ([]ScheduleRun, error)
}
