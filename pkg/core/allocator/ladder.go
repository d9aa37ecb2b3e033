package allocator

import "github.com/jakechorley/duty-roster/pkg/core/model"

// Step names reported in Relaxation records
const (
	StepStrict             = "strict"
	StepAllowConsecutive   = "allow-consecutive"
	StepAllowSameDate      = "allow-same-date"
	StepPrivilegedShare    = "privileged-share"
	StepTopUp              = "top-up"
	StepTopUpAllowSameDate = "top-up-allow-same-date"
)

// exclusionScope selects which exclusion sets a step honours
type exclusionScope int

const (
	// excludeSameDateAndPrevious skips anyone already working this date and, when the
	// no-repeat preference is on, non-privileged people who worked the previous date
	excludeSameDateAndPrevious exclusionScope = iota
	excludeSameDate
	excludeNothing
)

// poolSelector picks the rotation a step draws from
type poolSelector func(pools *Pools, role string) *RotationPool

func rolePrivileged(pools *Pools, role string) *RotationPool {
	return pools.Role(role).Privileged
}

func roleNonPrivileged(pools *Pools, role string) *RotationPool {
	return pools.Role(role).NonPrivileged
}

func roleAll(pools *Pools, role string) *RotationPool {
	return pools.Role(role).All
}

func populationAll(pools *Pools, _ string) *RotationPool {
	return pools.Population.All
}

// step is one rung of a relaxation ladder: take from a pool honouring a set of exclusions
type step struct {
	name    string
	pool    poolSelector
	scope   exclusionScope
	relaxed bool
}

// stage is an ordered ladder of steps working towards a quota of names.
// A top-up stage works towards whatever is left of the role's headcount.
type stage struct {
	quota int
	topUp bool
	steps []step
}

// plan returns the ordered stages used to fill a role of the given requirement
func (e *engine) plan(req model.Requirement) []stage {
	n := req.Headcount

	switch req.Policy {
	case model.PolicyPrivilegedOnly:
		return []stage{{
			quota: n,
			steps: []step{
				{name: StepStrict, pool: rolePrivileged, scope: excludeSameDate},
				{name: StepAllowSameDate, pool: rolePrivileged, scope: excludeNothing, relaxed: true},
			},
		}}

	case model.PolicyNonPrivilegedOnly:
		return []stage{{quota: n, steps: threeStepLadder(roleNonPrivileged)}}

	case model.PolicyAny:
		return []stage{{quota: n, steps: threeStepLadder(roleAll)}}

	case model.PolicyMixed:
		nonPrivileged := min(e.opts.MixedNonPrivilegedShare, n)
		fallback := roleAll
		if e.opts.MixedFallback == FallbackPopulation {
			fallback = populationAll
		}

		return []stage{
			{
				quota: nonPrivileged,
				steps: []step{
					{name: StepStrict, pool: roleNonPrivileged, scope: excludeSameDateAndPrevious},
					{name: StepAllowConsecutive, pool: roleNonPrivileged, scope: excludeSameDate, relaxed: true},
				},
			},
			{
				quota: n - nonPrivileged,
				steps: []step{
					{name: StepPrivilegedShare, pool: rolePrivileged, scope: excludeSameDate},
				},
			},
			{
				topUp: true,
				steps: []step{
					{name: StepTopUp, pool: fallback, scope: excludeSameDate, relaxed: true},
					{name: StepTopUpAllowSameDate, pool: fallback, scope: excludeNothing, relaxed: true},
				},
			},
		}
	}

	return nil
}

func threeStepLadder(pool poolSelector) []step {
	return []step{
		{name: StepStrict, pool: pool, scope: excludeSameDateAndPrevious},
		{name: StepAllowConsecutive, pool: pool, scope: excludeSameDate, relaxed: true},
		{name: StepAllowSameDate, pool: pool, scope: excludeNothing, relaxed: true},
	}
}
