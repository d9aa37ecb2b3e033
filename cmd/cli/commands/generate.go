package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/allocator"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	var (
		flags  scheduleFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the monthly duty schedule workbook",
		Long: `Build the schedule for every occurrence of the configured weekday in the month
and write it to an xlsx report. The run is archived when a database is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = app.Cfg.OutputPath
			}

			source, err := flags.rosterSource(app)
			if err != nil {
				return err
			}
			req, err := flags.request(app, output)
			if err != nil {
				return err
			}

			deps := services.GenerateDeps{Source: source, Writer: services.XlsxWriter{}}
			if app.HasDatabase() {
				database, err := app.Database()
				if err != nil {
					return err
				}
				deps.Archive = database
			}

			result, err := services.GenerateSchedule(app.Ctx, deps, app.Logger, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[OK] Generated %s for %d %ss.\n",
				result.OutputPath, len(result.Schedule.Dates), result.Schedule.Weekday)
			printIssues(out, result.Issues)
			if result.RunID != "" {
				fmt.Fprintf(out, "Archived as run %s\n", result.RunID)
			}
			if app.Verbose {
				printSummary(out, result)
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output workbook path (default from config)")

	return cmd
}

func printIssues(out io.Writer, issues []allocator.ScheduleValidationError) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(out, "⚠️  %d issue(s) found:\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(out, "  - %s: %s\n", issue.Date, issue.Description)
	}
}

// printSummary prints the roster size, the detected roles and the headcount per role per date
func printSummary(out io.Writer, result *services.GenerateResult) {
	fmt.Fprintf(out, "[INFO] Total people: %d | Roles detected: %s\n",
		len(result.Roster.People), strings.Join(result.Roster.Roles, ", "))

	schedule := result.Schedule
	for _, date := range schedule.Dates {
		counts := make([]string, 0, len(schedule.Requirements))
		for _, role := range schedule.Roles() {
			counts = append(counts, fmt.Sprintf("%s=%d", role, len(schedule.Names(date, role))))
		}
		fmt.Fprintf(out, "[INFO] %s: %s\n", allocator.DateKey(date), strings.Join(counts, ", "))
	}
}
