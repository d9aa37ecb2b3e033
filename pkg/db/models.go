package db

import "time"

// ScheduleRun is one archived generation of a monthly schedule
type ScheduleRun struct {
	ID             string    `json:"id"`
	SeedKey        string    `json:"seedKey"`
	Year           int       `json:"year"`
	Month          int       `json:"month"`
	Weekday        string    `json:"weekday"`
	Source         string    `json:"source"`
	PeopleCount    int       `json:"peopleCount"`
	DateCount      int       `json:"dateCount"`
	ShortfallCount int       `json:"shortfallCount"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// ScheduleAssignment is one name in one role slot of an archived run
type ScheduleAssignment struct {
	RunID    string `json:"runId"`
	Date     string `json:"date"`
	Role     string `json:"role"`
	Position int    `json:"position"`
	Name     string `json:"name"`
}
