package allocator

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// Mixed role headcount bounds
const (
	MinMixedHeadcount     = 1
	MaxMixedHeadcount     = 4
	DefaultMixedHeadcount = 3

	// DefaultMixedNonPrivilegedShare is the number of mixed-role slots aimed at non-privileged people
	DefaultMixedNonPrivilegedShare = 2
)

// FallbackPool names the pool a mixed role tops up from when its category shares fall short
type FallbackPool string

const (
	// FallbackRole tops up from everyone eligible for the role
	FallbackRole FallbackPool = "role"

	// FallbackPopulation tops up from the whole roster, ignoring role eligibility
	FallbackPopulation FallbackPool = "population"
)

// Options configures a schedule run
type Options struct {
	// Weekday the duty falls on
	Weekday time.Weekday

	// PreferNoRepeat avoids giving non-privileged people consecutive dates when the pool allows
	PreferNoRepeat bool

	// MixedHeadcount overrides the headcount of every mixed role when non-zero (clamped to [1,4]).
	// Zero keeps DefaultMixedHeadcount for the default table and the declared headcount otherwise.
	MixedHeadcount int

	// MixedNonPrivilegedShare is the most non-privileged people a mixed role aims for
	MixedNonPrivilegedShare int

	MixedFallback FallbackPool

	// Requirements replaces the default role table when non-empty
	Requirements []model.Requirement
}

// DefaultOptions returns the reference policy: Sundays, no consecutive repeats, 3-person mixed role
func DefaultOptions() Options {
	return Options{
		Weekday:                 time.Sunday,
		PreferNoRepeat:          true,
		MixedNonPrivilegedShare: DefaultMixedNonPrivilegedShare,
		MixedFallback:           FallbackRole,
	}
}

// ClampMixedHeadcount bounds a requested mixed headcount to [1,4]
func ClampMixedHeadcount(n int) int {
	return min(max(n, MinMixedHeadcount), MaxMixedHeadcount)
}

// DefaultRequirements returns the reference role table in processing order
func DefaultRequirements(mixedHeadcount int) []model.Requirement {
	return []model.Requirement{
		{Role: "DP/PA", Headcount: 1, Policy: model.PolicyPrivilegedOnly},
		{Role: "W/PB", Headcount: 1, Policy: model.PolicyPrivilegedOnly},
		{Role: "Persembahan", Headcount: 1, Policy: model.PolicyPrivilegedOnly},
		{Role: "Kolektan", Headcount: 1, Policy: model.PolicyPrivilegedOnly},
		{Role: "P. Jemaat", Headcount: ClampMixedHeadcount(mixedHeadcount), Policy: model.PolicyMixed},
		{Role: "Lektor", Headcount: 2, Policy: model.PolicyNonPrivilegedOnly},
		{Role: "Pemusik", Headcount: 2, Policy: model.PolicyNonPrivilegedOnly},
		{Role: "Multimedia", Headcount: 1, Policy: model.PolicyAny},
		{Role: "Prokantor", Headcount: 2, Policy: model.PolicyNonPrivilegedOnly},
	}
}

// FilterRequirements keeps the requirements whose role is present in the roster, in table order
func FilterRequirements(reqs []model.Requirement, present []string) []model.Requirement {
	filtered := make([]model.Requirement, 0, len(reqs))
	for _, req := range reqs {
		if slices.Contains(present, req.Role) {
			filtered = append(filtered, req)
		}
	}
	return filtered
}

// normalize clamps soft limits and rejects malformed options
func (o Options) normalize() (Options, error) {
	if o.Weekday < time.Sunday || o.Weekday > time.Saturday {
		return o, fmt.Errorf("%w: weekday %d out of range", ErrConfigurationInvalid, o.Weekday)
	}
	if o.MixedNonPrivilegedShare < 0 {
		return o, fmt.Errorf("%w: mixed non-privileged share must not be negative, got %d",
			ErrConfigurationInvalid, o.MixedNonPrivilegedShare)
	}

	switch o.MixedFallback {
	case "":
		o.MixedFallback = FallbackRole
	case FallbackRole, FallbackPopulation:
	default:
		return o, fmt.Errorf("%w: unknown mixed fallback pool %q", ErrConfigurationInvalid, o.MixedFallback)
	}

	if o.MixedHeadcount != 0 {
		o.MixedHeadcount = ClampMixedHeadcount(o.MixedHeadcount)
	}

	if len(o.Requirements) == 0 {
		o.Requirements = DefaultRequirements(cmp.Or(o.MixedHeadcount, DefaultMixedHeadcount))
		return o, nil
	}

	seen := make(map[string]bool, len(o.Requirements))
	for _, req := range o.Requirements {
		if req.Role == "" {
			return o, fmt.Errorf("%w: requirement with empty role name", ErrConfigurationInvalid)
		}
		if seen[req.Role] {
			return o, fmt.Errorf("%w: duplicate requirement for role %q", ErrConfigurationInvalid, req.Role)
		}
		seen[req.Role] = true

		if req.Headcount <= 0 {
			return o, fmt.Errorf("%w: role %q headcount must be positive, got %d",
				ErrConfigurationInvalid, req.Role, req.Headcount)
		}
		if !req.Policy.IsValid() {
			return o, fmt.Errorf("%w: role %q has unknown policy %q", ErrConfigurationInvalid, req.Role, req.Policy)
		}
	}
	o.Requirements = slices.Clone(o.Requirements)
	for i, req := range o.Requirements {
		if req.Policy == model.PolicyMixed {
			o.Requirements[i].Headcount = ClampMixedHeadcount(cmp.Or(o.MixedHeadcount, req.Headcount))
		}
	}

	return o, nil
}
