package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// PersonSummary is one roster entry with the roles they may serve, in column order
type PersonSummary struct {
	Name       string
	Privileged bool
	Roles      []string
}

// ListPeople loads the roster and summarises each person, sorted by name
func ListPeople(ctx context.Context, source RosterSource, logger *zap.Logger) ([]PersonSummary, error) {
	roster, err := source.LoadRoster(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	logger.Debug("Roster loaded", zap.Int("people", len(roster.People)))

	people := make([]PersonSummary, 0, len(roster.People))
	for _, person := range roster.People {
		people = append(people, summarise(person, roster.Roles))
	}

	slices.SortFunc(people, func(a, b PersonSummary) int {
		return strings.Compare(a.Name, b.Name)
	})

	return people, nil
}

func summarise(person model.Person, roles []string) PersonSummary {
	summary := PersonSummary{Name: person.Name, Privileged: person.Privileged}
	for _, role := range roles {
		if person.CanServe(role) {
			summary.Roles = append(summary.Roles, role)
		}
	}
	return summary
}
