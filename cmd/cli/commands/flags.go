package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// Roster sources accepted by --source
const (
	sourceXlsx   = "xlsx"
	sourceSheets = "sheets"
)

// scheduleFlags are shared by every command that builds a schedule
type scheduleFlags struct {
	source              string
	master              string
	year                int
	month               int
	mixedCount          int
	repeatNonPrivileged bool
}

func (f *scheduleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.source, "source", sourceXlsx, "Roster source: xlsx or sheets")
	cmd.Flags().StringVar(&f.master, "master", "Master.xlsx", "Path to Master.xlsx")
	cmd.Flags().IntVar(&f.year, "year", 0, "Year to schedule (required)")
	cmd.Flags().IntVar(&f.month, "month", 0, "Month to schedule, 1-12 (required)")
	cmd.Flags().IntVar(&f.mixedCount, "mixed-count", 0, "Headcount of every mixed role such as P. Jemaat (default from config or 3, max 4)")
	cmd.Flags().BoolVar(&f.repeatNonPrivileged, "repeat-non-privileged", false,
		"Do not try to avoid giving non-privileged people consecutive dates")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")
}

// options merges the flags over the configured schedule options
func (f *scheduleFlags) options(app *AppContext) (allocator.Options, error) {
	opts, err := app.Cfg.ScheduleOptions()
	if err != nil {
		return opts, err
	}
	if f.mixedCount != 0 {
		opts.MixedHeadcount = f.mixedCount
	}
	if f.repeatNonPrivileged {
		opts.PreferNoRepeat = false
	}
	return opts, nil
}

func (f *scheduleFlags) period() (int, time.Month, error) {
	if f.month < 1 || f.month > 12 {
		return 0, 0, fmt.Errorf("month must be between 1 and 12, got %d", f.month)
	}
	if f.year < 1 {
		return 0, 0, fmt.Errorf("year must be positive, got %d", f.year)
	}
	return f.year, time.Month(f.month), nil
}

func (f *scheduleFlags) rosterSource(app *AppContext) (services.RosterSource, error) {
	return rosterSource(app, f.source, f.master)
}

func rosterSource(app *AppContext, source, master string) (services.RosterSource, error) {
	switch source {
	case sourceXlsx:
		return services.XlsxSource{Path: master}, nil
	case sourceSheets:
		client, err := app.SheetsClient()
		if err != nil {
			return nil, err
		}
		return services.SheetsSource{
			Reader:        client,
			SpreadsheetID: app.Cfg.Sheets.RosterSheetID,
			Tab:           app.Cfg.Sheets.RosterTab,
		}, nil
	default:
		return nil, fmt.Errorf("unknown source %q (expected %s or %s)", source, sourceXlsx, sourceSheets)
	}
}

// request builds a GenerateRequest; outputPath may be empty when no report is written
func (f *scheduleFlags) request(app *AppContext, outputPath string) (services.GenerateRequest, error) {
	year, month, err := f.period()
	if err != nil {
		return services.GenerateRequest{}, err
	}
	opts, err := f.options(app)
	if err != nil {
		return services.GenerateRequest{}, fmt.Errorf("invalid schedule options: %w", err)
	}

	return services.GenerateRequest{
		Year:       year,
		Month:      month,
		Options:    opts,
		OutputPath: outputPath,
		Report:     app.Cfg.ReportOptions(),
	}, nil
}
