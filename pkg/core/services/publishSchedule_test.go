package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/allocator"
)

func buildReferenceSchedule(t *testing.T) *allocator.Schedule {
	t.Helper()
	roster := referenceRoster()
	schedule, err := allocator.BuildSchedule(roster.People, roster.Roles, 2026, time.February, allocator.DefaultOptions())
	require.NoError(t, err)
	return schedule
}

func TestPublishSchedule(t *testing.T) {
	cfg := config.Default()
	cfg.Sheets = &config.SheetsConfig{
		RosterSheetID:   "roster-sheet",
		RosterTab:       "Master",
		ScheduleSheetID: "schedule-sheet",
	}
	schedule := buildReferenceSchedule(t)
	publisher := &mockPublisher{}

	title, err := PublishSchedule(context.Background(), publisher, cfg, zap.NewNop(), schedule)
	require.NoError(t, err)

	assert.Equal(t, "Jadwal February 2026", title)
	assert.Equal(t, "schedule-sheet", publisher.spreadsheetID)
	assert.Equal(t, 2026, publisher.year)
	assert.Equal(t, time.February, publisher.month)

	require.NotNil(t, publisher.grid)
	assert.Equal(t, "WAKTU", publisher.grid.Corner)
	require.Len(t, publisher.grid.Headers, 4)
	assert.Equal(t, "MINGGU, 01 FEBRUARY 2026\nPkl. 07.00 Wib,", publisher.grid.Headers[0])
	require.Len(t, publisher.grid.Rows, 9)
	// Display order puts Prokantor before Pemusik
	assert.Equal(t, "Prokantor", publisher.grid.Rows[6].Role)
	assert.Equal(t, "Pemusik", publisher.grid.Rows[7].Role)
}

func TestPublishSchedule_Errors(t *testing.T) {
	withSheets := config.Default()
	withSheets.Sheets = &config.SheetsConfig{RosterSheetID: "r", RosterTab: "Master", ScheduleSheetID: "s"}

	tests := []struct {
		name      string
		cfg       *config.Config
		publisher *mockPublisher
		wantErr   string
	}{
		{
			name:      "missing sheets config",
			cfg:       config.Default(),
			publisher: &mockPublisher{},
			wantErr:   "sheets configuration is missing",
		},
		{
			name:      "publisher error",
			cfg:       withSheets,
			publisher: &mockPublisher{err: fmt.Errorf("quota exceeded")},
			wantErr:   "failed to publish schedule: quota exceeded",
		},
	}

	schedule := buildReferenceSchedule(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PublishSchedule(context.Background(), tt.publisher, tt.cfg, zap.NewNop(), schedule)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
