package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/report"
	"github.com/jakechorley/duty-roster/pkg/db"
)

var referenceRoles = []string{
	"DP/PA", "W/PB", "Persembahan", "Kolektan", "P. Jemaat",
	"Lektor", "Pemusik", "Multimedia", "Prokantor",
}

// mockSource implements RosterSource
type mockSource struct {
	roster *model.Roster
	err    error
}

func (m *mockSource) LoadRoster(ctx context.Context) (*model.Roster, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.roster, nil
}

func (m *mockSource) Describe() string {
	return "Master.xlsx"
}

// mockWriter implements ReportWriter
type mockWriter struct {
	path     string
	schedule *allocator.Schedule
	opts     report.Options
	err      error
}

func (m *mockWriter) WriteSchedule(path string, schedule *allocator.Schedule, opts report.Options) error {
	if m.err != nil {
		return m.err
	}
	m.path = path
	m.schedule = schedule
	m.opts = opts
	return nil
}

// mockArchive implements db.ScheduleArchive
type mockArchive struct {
	runs        []db.ScheduleRun
	inserted    *db.ScheduleRun
	assignments []db.ScheduleAssignment
	insertErr   error
	getErr      error
}

func (m *mockArchive) InsertScheduleRun(ctx context.Context, run *db.ScheduleRun, assignments []db.ScheduleAssignment) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = run
	m.assignments = assignments
	return nil
}

func (m *mockArchive) GetScheduleRuns(ctx context.Context) ([]db.ScheduleRun, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.runs, nil
}

// mockPublisher implements SchedulePublisher
type mockPublisher struct {
	spreadsheetID string
	year          int
	month         time.Month
	grid          *report.Grid
	err           error
}

func (m *mockPublisher) PublishSchedule(spreadsheetID string, year int, month time.Month, grid *report.Grid) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.spreadsheetID = spreadsheetID
	m.year = year
	m.month = month
	m.grid = grid
	return fmt.Sprintf("Jadwal %s %d", month, year), nil
}

// referenceRoster returns 5 privileged and 10 non-privileged people, all eligible for every role
func referenceRoster() *model.Roster {
	roster := &model.Roster{Roles: referenceRoles}
	for i := 1; i <= 15; i++ {
		eligibility := make(map[string]bool, len(referenceRoles))
		for _, role := range referenceRoles {
			eligibility[role] = true
		}
		roster.People = append(roster.People, model.Person{
			Name:        fmt.Sprintf("Person %02d", i),
			Privileged:  i <= 5,
			Eligibility: eligibility,
		})
	}
	return roster
}
