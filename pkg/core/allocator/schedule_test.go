package allocator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

var allRoles = []string{
	"DP/PA", "W/PB", "Persembahan", "Kolektan", "P. Jemaat",
	"Lektor", "Pemusik", "Multimedia", "Prokantor",
}

func person(name string, privileged bool, roles ...string) model.Person {
	eligibility := make(map[string]bool, len(roles))
	for _, role := range roles {
		eligibility[role] = true
	}
	return model.Person{Name: name, Privileged: privileged, Eligibility: eligibility}
}

// congregation builds a roster where everyone is eligible for every role
func congregation(privileged, nonPrivileged int) []model.Person {
	var people []model.Person
	for i := 1; i <= privileged; i++ {
		people = append(people, person(fmt.Sprintf("P%d", i), true, allRoles...))
	}
	for i := 1; i <= nonPrivileged; i++ {
		people = append(people, person(fmt.Sprintf("M%02d", i), false, allRoles...))
	}
	return people
}

func TestBuildSchedule_FullCongregation(t *testing.T) {
	schedule, err := BuildSchedule(congregation(5, 10), allRoles, 2026, time.February, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, schedule.Dates, 4)
	assert.Equal(t, "2026-02", schedule.SeedKey)
	assert.Equal(t, allRoles, schedule.Roles())
	assert.Empty(t, schedule.Shortfalls)
	assert.Empty(t, Validate(schedule), "no role may repeat a name on the same date")

	for _, date := range schedule.Dates {
		day := schedule.For(date)
		for _, req := range schedule.Requirements {
			assert.Len(t, day[req.Role], req.Headcount, "%s %s", DateKey(date), req.Role)
		}
	}

	// Privileged-only roles rotate through distinct people before repeating
	for _, role := range []string{"DP/PA", "W/PB", "Persembahan", "Kolektan"} {
		seen := map[string]bool{}
		for _, date := range schedule.Dates {
			names := schedule.Names(date, role)
			require.Len(t, names, 1)
			assert.False(t, seen[names[0]], "%s repeated %s within four dates", role, names[0])
			assert.Contains(t, names[0], "P")
			seen[names[0]] = true
		}
	}
}

func TestBuildSchedule_CategoryPolicies(t *testing.T) {
	people := congregation(5, 10)
	privileged := map[string]bool{}
	for _, p := range people {
		privileged[p.Name] = p.Privileged
	}

	schedule, err := BuildSchedule(people, allRoles, 2026, time.February, DefaultOptions())
	require.NoError(t, err)

	for _, date := range schedule.Dates {
		for _, role := range []string{"DP/PA", "W/PB", "Persembahan", "Kolektan"} {
			for _, name := range schedule.Names(date, role) {
				assert.True(t, privileged[name], "%s must be privileged for %s", name, role)
			}
		}
		for _, role := range []string{"Lektor", "Pemusik", "Prokantor"} {
			for _, name := range schedule.Names(date, role) {
				assert.False(t, privileged[name], "%s must not be privileged for %s", name, role)
			}
		}

		mixed := schedule.Names(date, "P. Jemaat")
		require.Len(t, mixed, 3)
		assert.False(t, privileged[mixed[0]])
		assert.False(t, privileged[mixed[1]])
		assert.True(t, privileged[mixed[2]])
	}
}

func TestBuildSchedule_Deterministic(t *testing.T) {
	people := congregation(5, 10)

	first, err := BuildSchedule(people, allRoles, 2025, time.March, DefaultOptions())
	require.NoError(t, err)
	second, err := BuildSchedule(people, allRoles, 2025, time.March, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Input order must not matter either
	reversed := make([]model.Person, len(people))
	for i, p := range people {
		reversed[len(people)-1-i] = p
	}
	third, err := BuildSchedule(reversed, allRoles, 2025, time.March, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first.Assignments, third.Assignments)
}

func TestBuildSchedule_UnderfilledRoleIsNotAnError(t *testing.T) {
	people := []model.Person{
		person("Ani", false, "Lektor"),
		person("Budi", false),
		person("Pak Tono", true),
	}

	schedule, err := BuildSchedule(people, []string{"Lektor"}, 2026, time.February, DefaultOptions())
	require.NoError(t, err)

	for _, date := range schedule.Dates {
		assert.Equal(t, []string{"Ani"}, schedule.Names(date, "Lektor"))
		assert.True(t, schedule.IsShort(date, "Lektor"))
	}

	require.Len(t, schedule.Shortfalls, 4)
	assert.Equal(t, Shortfall{Date: "2026-02-01", Role: "Lektor", Required: 2, Assigned: 1}, schedule.Shortfalls[0])
}

func TestBuildSchedule_MixedRoleWithoutNonPrivileged(t *testing.T) {
	var people []model.Person
	for i := 1; i <= 5; i++ {
		people = append(people, person(fmt.Sprintf("P%d", i), true, "P. Jemaat"))
	}

	schedule, err := BuildSchedule(people, []string{"P. Jemaat"}, 2026, time.February, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, schedule.Shortfalls)

	assert.Equal(t, []string{"P1", "P2", "P3"}, schedule.Names(schedule.Dates[0], "P. Jemaat"))
	assert.Equal(t, []string{"P2", "P4", "P5"}, schedule.Names(schedule.Dates[1], "P. Jemaat"))

	for _, date := range schedule.Dates {
		names := schedule.Names(date, "P. Jemaat")
		require.Len(t, names, 3)
		assert.Len(t, map[string]bool{names[0]: true, names[1]: true, names[2]: true}, 3)
	}

	require.NotEmpty(t, schedule.Relaxations)
	assert.Equal(t, StepTopUp, schedule.Relaxations[0].Step)
	assert.Equal(t, []string{"P2", "P3"}, schedule.Relaxations[0].Names)
}

func TestBuildSchedule_MixedFallbackPool(t *testing.T) {
	people := []model.Person{
		person("Pak Tono", true, "P. Jemaat"),
		person("Budi", false),
	}

	tests := []struct {
		name     string
		fallback FallbackPool
		want     []string
	}{
		{"role pool respects eligibility", FallbackRole, []string{"Pak Tono"}},
		{"population pool ignores eligibility", FallbackPopulation, []string{"Pak Tono", "Budi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.MixedFallback = tt.fallback

			schedule, err := BuildSchedule(people, []string{"P. Jemaat"}, 2026, time.February, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, schedule.Names(schedule.Dates[0], "P. Jemaat"))
		})
	}
}

func TestBuildSchedule_AvoidsConsecutiveDates(t *testing.T) {
	people := []model.Person{
		person("A", false, "Lektor"),
		person("B", false, "Lektor"),
		person("C", false, "Lektor"),
		person("D", false, "Lektor"),
	}

	schedule, err := BuildSchedule(people, []string{"Lektor"}, 2026, time.February, DefaultOptions())
	require.NoError(t, err)

	for i := 1; i < len(schedule.Dates); i++ {
		prev := schedule.Names(schedule.Dates[i-1], "Lektor")
		curr := schedule.Names(schedule.Dates[i], "Lektor")
		for _, name := range curr {
			assert.NotContains(t, prev, name, "%s worked consecutive dates", name)
		}
	}
	assert.Empty(t, schedule.Relaxations)
}

func TestBuildSchedule_ConsecutiveRelaxation(t *testing.T) {
	people := []model.Person{
		person("A", false, "Lektor"),
		person("B", false, "Lektor"),
		person("C", false, "Lektor"),
	}

	t.Run("prefer no repeat", func(t *testing.T) {
		schedule, err := BuildSchedule(people, []string{"Lektor"}, 2026, time.February, DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, []string{"A", "B"}, schedule.Names(schedule.Dates[0], "Lektor"))
		assert.Equal(t, []string{"C", "A"}, schedule.Names(schedule.Dates[1], "Lektor"))

		require.NotEmpty(t, schedule.Relaxations)
		assert.Equal(t, Relaxation{
			Date:  "2026-02-08",
			Role:  "Lektor",
			Step:  StepAllowConsecutive,
			Names: []string{"A"},
		}, schedule.Relaxations[0])
	})

	t.Run("repeats allowed", func(t *testing.T) {
		opts := DefaultOptions()
		opts.PreferNoRepeat = false

		schedule, err := BuildSchedule(people, []string{"Lektor"}, 2026, time.February, opts)
		require.NoError(t, err)

		assert.Equal(t, []string{"A", "B"}, schedule.Names(schedule.Dates[0], "Lektor"))
		assert.Equal(t, []string{"C", "A"}, schedule.Names(schedule.Dates[1], "Lektor"))
		assert.Empty(t, schedule.Relaxations)
	})
}

func TestBuildSchedule_SameDateRepeatAsLastResort(t *testing.T) {
	people := []model.Person{
		person("Pak Tono", true, "DP/PA", "W/PB"),
	}

	schedule, err := BuildSchedule(people, []string{"DP/PA", "W/PB"}, 2026, time.February, DefaultOptions())
	require.NoError(t, err)

	date := schedule.Dates[0]
	assert.Equal(t, []string{"Pak Tono"}, schedule.Names(date, "DP/PA"))
	assert.Equal(t, []string{"Pak Tono"}, schedule.Names(date, "W/PB"))
	assert.Empty(t, schedule.Shortfalls)

	require.NotEmpty(t, schedule.Relaxations)
	assert.Equal(t, StepAllowSameDate, schedule.Relaxations[0].Step)
	assert.Equal(t, "W/PB", schedule.Relaxations[0].Role)

	errs := Validate(schedule)
	require.Len(t, errs, 4)
	assert.Equal(t, CheckSameDateRepeat, errs[0].CheckName)
}

func TestBuildSchedule_SkipsRolesMissingFromRoster(t *testing.T) {
	people := congregation(2, 4)

	schedule, err := BuildSchedule(people, []string{"Lektor", "Choir"}, 2026, time.February, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Lektor"}, schedule.Roles())
	for _, date := range schedule.Dates {
		assert.Len(t, schedule.For(date), 1)
	}
}

func TestBuildSchedule_NormalizesNames(t *testing.T) {
	people := []model.Person{
		person("  Ani  ", false, "Multimedia"),
		person("Ani", false),
		person("   ", false, "Multimedia"),
	}

	schedule, err := BuildSchedule(people, []string{"Multimedia"}, 2026, time.February, DefaultOptions())
	require.NoError(t, err)

	for _, date := range schedule.Dates {
		assert.Equal(t, []string{"Ani"}, schedule.Names(date, "Multimedia"))
	}
}

func TestNormalizeRoster_CaseInsensitiveDuplicates(t *testing.T) {
	roster := NormalizeRoster([]model.Person{
		person("Ani", false, "Multimedia"),
		person(" ani ", true, "Lektor"),
		person("ANI", false),
		person("Budi", false, "Lektor"),
	})

	require.Len(t, roster, 2)
	assert.Equal(t, "Ani", roster[0].Name)
	assert.False(t, roster[0].Privileged)
	assert.True(t, roster[0].CanServe("Multimedia"))
	assert.False(t, roster[0].CanServe("Lektor"))
	assert.Equal(t, "Budi", roster[1].Name)
}

func TestBuildSchedule_MixedHeadcountClamped(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{0, DefaultMixedHeadcount},
		{-2, 1},
		{1, 1},
		{3, 3},
		{4, 4},
		{9, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("requested %d", tt.requested), func(t *testing.T) {
			opts := DefaultOptions()
			opts.MixedHeadcount = tt.requested

			schedule, err := BuildSchedule(congregation(5, 10), allRoles, 2026, time.February, opts)
			require.NoError(t, err)

			req, ok := schedule.Requirement("P. Jemaat")
			require.True(t, ok)
			assert.Equal(t, tt.want, req.Headcount)
			assert.Len(t, schedule.Names(schedule.Dates[0], "P. Jemaat"), tt.want)
		})
	}
}

func TestBuildSchedule_Errors(t *testing.T) {
	people := congregation(1, 1)

	tests := []struct {
		name    string
		people  []model.Person
		month   time.Month
		opts    func(*Options)
		wantErr error
	}{
		{
			name:    "empty roster",
			people:  nil,
			month:   time.March,
			wantErr: ErrInputEmpty,
		},
		{
			name:    "only blank names",
			people:  []model.Person{{Name: "  "}},
			month:   time.March,
			wantErr: ErrInputEmpty,
		},
		{
			name:   "non-positive headcount",
			people: people,
			month:  time.March,
			opts: func(o *Options) {
				o.Requirements = []model.Requirement{{Role: "Lektor", Headcount: 0, Policy: model.PolicyAny}}
			},
			wantErr: ErrConfigurationInvalid,
		},
		{
			name:   "unknown policy",
			people: people,
			month:  time.March,
			opts: func(o *Options) {
				o.Requirements = []model.Requirement{{Role: "Lektor", Headcount: 1, Policy: "elders"}}
			},
			wantErr: ErrConfigurationInvalid,
		},
		{
			name:   "duplicate role",
			people: people,
			month:  time.March,
			opts: func(o *Options) {
				o.Requirements = []model.Requirement{
					{Role: "Lektor", Headcount: 1, Policy: model.PolicyAny},
					{Role: "Lektor", Headcount: 2, Policy: model.PolicyAny},
				}
			},
			wantErr: ErrConfigurationInvalid,
		},
		{
			name:    "unknown fallback",
			people:  people,
			month:   time.March,
			opts:    func(o *Options) { o.MixedFallback = "everyone" },
			wantErr: ErrConfigurationInvalid,
		},
		{
			name:    "invalid month",
			people:  people,
			month:   time.Month(13),
			wantErr: ErrConfigurationInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}

			schedule, err := BuildSchedule(tt.people, allRoles, 2025, tt.month, opts)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, schedule)
		})
	}
}

func TestBuildSchedule_CustomRequirements(t *testing.T) {
	opts := DefaultOptions()
	opts.Weekday = time.Saturday
	opts.Requirements = []model.Requirement{
		{Role: "Multimedia", Headcount: 2, Policy: model.PolicyAny},
	}

	schedule, err := BuildSchedule(congregation(2, 2), allRoles, 2025, time.March, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"Multimedia"}, schedule.Roles())
	require.Len(t, schedule.Dates, 5)
	for _, date := range schedule.Dates {
		assert.Equal(t, time.Saturday, date.Weekday())
		assert.Len(t, schedule.Names(date, "Multimedia"), 2)
	}
}

func TestBuildSchedule_CustomMixedHeadcount(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		declared  int
		want      int
	}{
		{"override wins over table", 4, 9, 4},
		{"override below table", 2, 3, 2},
		{"override clamped", 7, 1, 4},
		{"table headcount clamped", 0, 9, 4},
		{"table headcount kept", 0, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.MixedHeadcount = tt.requested
			opts.Requirements = []model.Requirement{
				{Role: "P. Jemaat", Headcount: tt.declared, Policy: model.PolicyMixed},
				{Role: "Lektor", Headcount: 2, Policy: model.PolicyNonPrivilegedOnly},
			}

			schedule, err := BuildSchedule(congregation(5, 10), allRoles, 2026, time.February, opts)
			require.NoError(t, err)

			req, ok := schedule.Requirement("P. Jemaat")
			require.True(t, ok)
			assert.Equal(t, tt.want, req.Headcount)
			assert.Len(t, schedule.Names(schedule.Dates[0], "P. Jemaat"), tt.want)

			// Only mixed roles follow the override
			lektor, ok := schedule.Requirement("Lektor")
			require.True(t, ok)
			assert.Equal(t, 2, lektor.Headcount)
		})
	}
}
