package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

func TestListPeople(t *testing.T) {
	roster := &model.Roster{
		Roles: []string{"DP/PA", "Lektor", "Multimedia"},
		People: []model.Person{
			{Name: "Budi", Eligibility: map[string]bool{"Lektor": true, "Multimedia": true}},
			{Name: "Ani", Privileged: true, Eligibility: map[string]bool{"DP/PA": true}},
			{Name: "Citra"},
		},
	}

	people, err := ListPeople(context.Background(), &mockSource{roster: roster}, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, people, 3)
	assert.Equal(t, PersonSummary{Name: "Ani", Privileged: true, Roles: []string{"DP/PA"}}, people[0])
	assert.Equal(t, PersonSummary{Name: "Budi", Roles: []string{"Lektor", "Multimedia"}}, people[1])
	assert.Equal(t, "Citra", people[2].Name)
	assert.Empty(t, people[2].Roles)
}

func TestListPeople_SourceError(t *testing.T) {
	_, err := ListPeople(context.Background(), &mockSource{err: fmt.Errorf("boom")}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load roster")
}

func TestListArchivedRuns(t *testing.T) {
	base := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)
	store := &mockArchive{runs: []db.ScheduleRun{
		{ID: "old", GeneratedAt: base},
		{ID: "newest", GeneratedAt: base.Add(48 * time.Hour)},
		{ID: "middle", GeneratedAt: base.Add(time.Hour)},
	}}

	runs, err := ListArchivedRuns(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, runs, 3)
	assert.Equal(t, "newest", runs[0].ID)
	assert.Equal(t, "middle", runs[1].ID)
	assert.Equal(t, "old", runs[2].ID)
}

func TestListArchivedRuns_Error(t *testing.T) {
	store := &mockArchive{getErr: fmt.Errorf("connection refused")}

	_, err := ListArchivedRuns(context.Background(), store, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch schedule runs")
}
