package api

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// PersonInput is one roster entry in a schedule request
type PersonInput struct {
	Name        string          `json:"name" binding:"required"`
	Privileged  bool            `json:"privileged"`
	Eligibility map[string]bool `json:"eligibility"`
}

// OptionsInput overrides the server's configured schedule options
type OptionsInput struct {
	Weekday                 string              `json:"weekday"`
	PreferNoRepeat          *bool               `json:"preferNoRepeat"`
	MixedHeadcount          int                 `json:"mixedHeadcount"`
	MixedNonPrivilegedShare *int                `json:"mixedNonPrivilegedShare" binding:"omitempty,min=0"`
	MixedFallback           string              `json:"mixedFallback" binding:"omitempty,oneof=role population"`
	Requirements            []model.Requirement `json:"requirements"`
}

// ScheduleRequest is the body of POST /api/schedule
type ScheduleRequest struct {
	Year    int           `json:"year" binding:"required,min=1"`
	Month   int           `json:"month" binding:"required,min=1,max=12"`
	People  []PersonInput `json:"people" binding:"dive"`
	Roles   []string      `json:"roles"`
	Options *OptionsInput `json:"options"`
}

// ScheduleResponse is a generated schedule keyed by ISO date
type ScheduleResponse struct {
	SeedKey     string                         `json:"seedKey"`
	Dates       []string                       `json:"dates"`
	Roles       []string                       `json:"roles"`
	Schedule    map[string]map[string][]string `json:"schedule"`
	Shortfalls  []allocator.Shortfall          `json:"shortfalls"`
	Relaxations []allocator.Relaxation         `json:"relaxations"`
}

// Handler contains dependencies for the route handlers
type Handler struct {
	cfg    *config.Config
	logger *zap.Logger
}

// Health reports that the server is up
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Schedule builds a schedule from the people posted in the request body
func (h *Handler) Schedule(c *gin.Context) {
	var input ScheduleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := h.options(input.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	people := make([]model.Person, len(input.People))
	for i, p := range input.People {
		people[i] = model.Person{Name: p.Name, Privileged: p.Privileged, Eligibility: p.Eligibility}
	}

	roles := input.Roles
	if len(roles) == 0 {
		roles = eligibilityRoles(input.People)
	}

	schedule, err := allocator.BuildSchedule(people, roles, input.Year, time.Month(input.Month), opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, allocator.ErrInputEmpty) || errors.Is(err, allocator.ErrConfigurationInvalid) {
			status = http.StatusUnprocessableEntity
		}
		h.logger.Warn("Schedule request rejected", zap.Error(err), zap.Int("status", status))
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Schedule generated",
		zap.String("month", schedule.SeedKey),
		zap.Int("people", len(people)),
		zap.Int("shortfalls", len(schedule.Shortfalls)))

	c.JSON(http.StatusOK, toResponse(schedule))
}

// options layers the request overrides on top of the configured options
func (h *Handler) options(input *OptionsInput) (allocator.Options, error) {
	opts, err := h.cfg.ScheduleOptions()
	if err != nil {
		return opts, err
	}
	if input == nil {
		return opts, nil
	}

	if input.Weekday != "" {
		wd, err := config.ParseWeekday(input.Weekday)
		if err != nil {
			return opts, err
		}
		opts.Weekday = wd
	}
	if input.PreferNoRepeat != nil {
		opts.PreferNoRepeat = *input.PreferNoRepeat
	}
	if input.MixedHeadcount != 0 {
		opts.MixedHeadcount = input.MixedHeadcount
	}
	if input.MixedNonPrivilegedShare != nil {
		opts.MixedNonPrivilegedShare = *input.MixedNonPrivilegedShare
	}
	if input.MixedFallback != "" {
		opts.MixedFallback = allocator.FallbackPool(input.MixedFallback)
	}
	if len(input.Requirements) > 0 {
		opts.Requirements = input.Requirements
	}

	return opts, nil
}

// eligibilityRoles collects every role any person is flagged for
func eligibilityRoles(people []PersonInput) []string {
	seen := make(map[string]bool)
	var roles []string
	for _, p := range people {
		for role := range p.Eligibility {
			if !seen[role] {
				seen[role] = true
				roles = append(roles, role)
			}
		}
	}
	sort.Strings(roles)
	return roles
}

func toResponse(schedule *allocator.Schedule) ScheduleResponse {
	dates := make([]string, len(schedule.Dates))
	for i, date := range schedule.Dates {
		dates[i] = allocator.DateKey(date)
	}

	return ScheduleResponse{
		SeedKey:     schedule.SeedKey,
		Dates:       dates,
		Roles:       schedule.Roles(),
		Schedule:    schedule.Assignments,
		Shortfalls:  schedule.Shortfalls,
		Relaxations: schedule.Relaxations,
	}
}
