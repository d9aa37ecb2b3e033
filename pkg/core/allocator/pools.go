package allocator

import "github.com/jakechorley/duty-roster/pkg/core/model"

// CategoryPools holds one rotation per category over the same population
type CategoryPools struct {
	All           *RotationPool
	Privileged    *RotationPool
	NonPrivileged *RotationPool
}

// Pools holds the population-wide rotations and the eligibility-filtered rotations per role
type Pools struct {
	Population *CategoryPools
	Roles      map[string]*CategoryPools
}

// BuildPools constructs every rotation for a run. Names are expected to be normalised already.
func BuildPools(people []model.Person, roles []string) *Pools {
	pools := &Pools{
		Population: newCategoryPools(people, func(model.Person) bool { return true }),
		Roles:      make(map[string]*CategoryPools, len(roles)),
	}

	for _, role := range roles {
		pools.Roles[role] = newCategoryPools(people, func(p model.Person) bool {
			return p.CanServe(role)
		})
	}

	return pools
}

// Role returns the pools for a role, or empty pools if the role was not built
func (p *Pools) Role(role string) *CategoryPools {
	if rp, ok := p.Roles[role]; ok {
		return rp
	}
	return newCategoryPools(nil, nil)
}

func newCategoryPools(people []model.Person, include func(model.Person) bool) *CategoryPools {
	var all, privileged, nonPrivileged []string
	for _, person := range people {
		if !include(person) {
			continue
		}
		all = append(all, person.Name)
		if person.Privileged {
			privileged = append(privileged, person.Name)
		} else {
			nonPrivileged = append(nonPrivileged, person.Name)
		}
	}

	return &CategoryPools{
		All:           NewRotationPool(all),
		Privileged:    NewRotationPool(privileged),
		NonPrivileged: NewRotationPool(nonPrivileged),
	}
}
