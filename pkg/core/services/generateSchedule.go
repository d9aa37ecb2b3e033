package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/report"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// GenerateDeps are the collaborators of GenerateSchedule. Writer and Archive are optional.
type GenerateDeps struct {
	Source  RosterSource
	Writer  ReportWriter
	Archive db.ScheduleArchive
}

// GenerateRequest describes the month to schedule and where to write it
type GenerateRequest struct {
	Year       int
	Month      time.Month
	Options    allocator.Options
	OutputPath string
	Report     report.Options
}

// GenerateResult represents the result of generating a monthly schedule
type GenerateResult struct {
	Roster     *model.Roster
	Schedule   *allocator.Schedule
	Issues     []allocator.ScheduleValidationError
	OutputPath string
	// RunID is empty when no archive is configured
	RunID string
}

// GenerateSchedule loads the roster, builds the month's schedule and writes it.
// Understaffed roles do not fail the run; they are returned as Issues and logged as warnings.
func GenerateSchedule(ctx context.Context, deps GenerateDeps, logger *zap.Logger, req GenerateRequest) (*GenerateResult, error) {
	if deps.Source == nil {
		return nil, fmt.Errorf("roster source is required")
	}

	logger.Debug("Loading roster", zap.String("source", deps.Source.Describe()))
	roster, err := deps.Source.LoadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if len(roster.People) == 0 {
		return nil, fmt.Errorf("%s contains no usable data: %w", deps.Source.Describe(), allocator.ErrInputEmpty)
	}

	logger.Debug("Roster loaded",
		zap.Int("people", len(roster.People)),
		zap.Strings("roles", roster.Roles))

	schedule, err := allocator.BuildSchedule(roster.People, roster.Roles, req.Year, req.Month, req.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule: %w", err)
	}

	logger.Info("Schedule built",
		zap.String("month", schedule.SeedKey),
		zap.Int("dates", len(schedule.Dates)),
		zap.Int("roles", len(schedule.Requirements)))

	for _, r := range schedule.Relaxations {
		logger.Debug("Relaxed selection",
			zap.String("date", r.Date),
			zap.String("role", r.Role),
			zap.String("step", r.Step),
			zap.Strings("names", r.Names))
	}

	issues := allocator.Validate(schedule)
	for _, issue := range issues {
		logger.Warn(issue.Description,
			zap.String("check", issue.CheckName),
			zap.String("date", issue.Date),
			zap.String("role", issue.Role))
	}

	result := &GenerateResult{
		Roster:   roster,
		Schedule: schedule,
		Issues:   issues,
	}

	if deps.Writer != nil && req.OutputPath != "" {
		if err := deps.Writer.WriteSchedule(req.OutputPath, schedule, req.Report); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		result.OutputPath = req.OutputPath
		logger.Debug("Report written", zap.String("path", req.OutputPath))
	}

	if deps.Archive != nil {
		runID, err := archiveSchedule(ctx, deps.Archive, deps.Source.Describe(), roster, schedule)
		if err != nil {
			return nil, err
		}
		result.RunID = runID
		logger.Debug("Schedule archived", zap.String("run_id", runID))
	}

	return result, nil
}

func archiveSchedule(ctx context.Context, archive db.ScheduleArchive, source string, roster *model.Roster, schedule *allocator.Schedule) (string, error) {
	run := &db.ScheduleRun{
		ID:             uuid.New().String(),
		SeedKey:        schedule.SeedKey,
		Year:           schedule.Year,
		Month:          int(schedule.Month),
		Weekday:        schedule.Weekday.String(),
		Source:         source,
		PeopleCount:    len(roster.People),
		DateCount:      len(schedule.Dates),
		ShortfallCount: len(schedule.Shortfalls),
		GeneratedAt:    time.Now().UTC(),
	}

	if err := archive.InsertScheduleRun(ctx, run, assignmentRows(run.ID, schedule)); err != nil {
		return "", fmt.Errorf("failed to archive schedule: %w", err)
	}
	return run.ID, nil
}

// assignmentRows flattens a schedule into one row per assigned name, dates ascending and roles in
// processing order
func assignmentRows(runID string, schedule *allocator.Schedule) []db.ScheduleAssignment {
	var rows []db.ScheduleAssignment
	for _, date := range schedule.Dates {
		key := allocator.DateKey(date)
		for _, role := range schedule.Roles() {
			for i, name := range schedule.Names(date, role) {
				rows = append(rows, db.ScheduleAssignment{
					RunID:    runID,
					Date:     key,
					Role:     role,
					Position: i,
					Name:     name,
				})
			}
		}
	}
	return rows
}
