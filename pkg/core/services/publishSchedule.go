package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/report"
)

// SchedulePublisher writes a schedule grid into a spreadsheet
type SchedulePublisher interface {
	PublishSchedule(spreadsheetID string, year int, month time.Month, grid *report.Grid) (string, error)
}

// PublishSchedule pushes the schedule into the month's tab of the configured schedule spreadsheet
// and returns the tab title
func PublishSchedule(ctx context.Context, publisher SchedulePublisher, cfg *config.Config, logger *zap.Logger, schedule *allocator.Schedule) (string, error) {
	if cfg.Sheets == nil {
		return "", fmt.Errorf("sheets configuration is missing")
	}

	grid := report.Build(schedule, cfg.ReportOptions())

	logger.Debug("Publishing schedule",
		zap.String("spreadsheet_id", cfg.Sheets.ScheduleSheetID),
		zap.String("month", schedule.SeedKey),
		zap.Int("rows", len(grid.Rows)))

	title, err := publisher.PublishSchedule(cfg.Sheets.ScheduleSheetID, schedule.Year, schedule.Month, grid)
	if err != nil {
		return "", fmt.Errorf("failed to publish schedule: %w", err)
	}

	logger.Info("Schedule published", zap.String("tab", title))
	return title, nil
}
