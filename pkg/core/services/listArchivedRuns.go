package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/db"
)

// ListArchivedRuns returns archived schedule runs, newest first
func ListArchivedRuns(ctx context.Context, store db.ScheduleArchive, logger *zap.Logger) ([]db.ScheduleRun, error) {
	logger.Debug("Fetching archived runs")

	runs, err := store.GetScheduleRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule runs: %w", err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].GeneratedAt.After(runs[j].GeneratedAt)
	})

	logger.Debug("Found archived runs", zap.Int("count", len(runs)))
	return runs, nil
}
