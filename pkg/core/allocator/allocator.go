package allocator

import (
	"slices"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// engine resolves roles for one date at a time; its pools rotate for the whole run
type engine struct {
	opts   Options
	pools  *Pools
	people map[string]model.Person
}

// dateState holds the exclusion sets while a date is being resolved
type dateState struct {
	key string

	// sameDate holds everyone assigned to any role on this date so far
	sameDate NameSet

	// previous holds non-privileged people assigned on the previous date
	previous NameSet

	// nextPrevious collects non-privileged people assigned on this date
	nextPrevious NameSet
}

func newDateState(key string, previous NameSet) *dateState {
	return &dateState{
		key:          key,
		sameDate:     NameSet{},
		previous:     previous,
		nextPrevious: NameSet{},
	}
}

// roleResult is the outcome of filling one role on one date
type roleResult struct {
	names       []string
	relaxations []Relaxation
}

// assignRole fills a role by walking its plan. Each step only asks for what is still missing,
// and names already chosen for the role are never offered twice.
func (e *engine) assignRole(req model.Requirement, state *dateState) roleResult {
	var result roleResult

	for _, st := range e.plan(req) {
		quota := st.quota
		if st.topUp {
			quota = req.Headcount - len(result.names)
		}

		var stageNames []string
		for _, s := range st.steps {
			remaining := min(quota-len(stageNames), req.Headcount-len(result.names)-len(stageNames))
			if remaining <= 0 {
				break
			}

			chosen := NameSet{}
			for _, name := range result.names {
				chosen[name] = true
			}
			for _, name := range stageNames {
				chosen[name] = true
			}

			pool := s.pool(e.pools, req.Role)
			taken := pool.Take(remaining, Union(e.exclusions(s.scope, state), chosen))
			if len(taken) == 0 {
				continue
			}

			stageNames = append(stageNames, taken...)
			if s.relaxed {
				result.relaxations = append(result.relaxations, Relaxation{
					Date:  state.key,
					Role:  req.Role,
					Step:  s.name,
					Names: slices.Clone(taken),
				})
			}
		}

		result.names = append(result.names, stageNames...)
	}

	return result
}

// exclusions returns the names a step must skip
func (e *engine) exclusions(scope exclusionScope, state *dateState) NameSet {
	switch scope {
	case excludeSameDateAndPrevious:
		if e.opts.PreferNoRepeat {
			return Union(state.sameDate, state.previous)
		}
		return state.sameDate
	case excludeSameDate:
		return state.sameDate
	}
	return nil
}

// record marks names as working this date and remembers the non-privileged ones for the next date
func (e *engine) record(names []string, state *dateState) {
	for _, name := range names {
		state.sameDate[name] = true
		if person, ok := e.people[name]; ok && !person.Privileged {
			state.nextPrevious[name] = true
		}
	}
}
