package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/duty-roster/pkg/clients/xlsxclient"
	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/report"
)

// RosterSource loads the people and role columns a schedule is built from
type RosterSource interface {
	LoadRoster(ctx context.Context) (*model.Roster, error)
	// Describe names the source in logs and error messages
	Describe() string
}

// ReportWriter persists a finished schedule to a file
type ReportWriter interface {
	WriteSchedule(path string, schedule *allocator.Schedule, opts report.Options) error
}

// RosterReader is the part of the Sheets client SheetsSource needs
type RosterReader interface {
	ReadRoster(spreadsheetID, tab string) (*model.Roster, error)
}

// XlsxSource reads the roster from a Master.xlsx file
type XlsxSource struct {
	Path string
}

func (s XlsxSource) LoadRoster(ctx context.Context) (*model.Roster, error) {
	return xlsxclient.ReadMaster(s.Path)
}

func (s XlsxSource) Describe() string {
	return s.Path
}

// SheetsSource reads the roster from a Google Sheets tab
type SheetsSource struct {
	Reader        RosterReader
	SpreadsheetID string
	Tab           string
}

func (s SheetsSource) LoadRoster(ctx context.Context) (*model.Roster, error) {
	return s.Reader.ReadRoster(s.SpreadsheetID, s.Tab)
}

func (s SheetsSource) Describe() string {
	return fmt.Sprintf("sheet %s (tab %q)", s.SpreadsheetID, s.Tab)
}

// XlsxWriter writes the styled monthly report
type XlsxWriter struct{}

func (XlsxWriter) WriteSchedule(path string, schedule *allocator.Schedule, opts report.Options) error {
	return xlsxclient.WriteSchedule(path, schedule, opts)
}
