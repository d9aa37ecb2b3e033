package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
	"github.com/jakechorley/duty-roster/pkg/utils/render"
)

// PreviewCmd creates the preview command
func PreviewCmd(app *AppContext) *cobra.Command {
	var flags scheduleFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the monthly schedule as a table without writing any files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := flags.rosterSource(app)
			if err != nil {
				return err
			}
			req, err := flags.request(app, "")
			if err != nil {
				return err
			}

			result, err := services.GenerateSchedule(app.Ctx, services.GenerateDeps{Source: source}, app.Logger, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.ScheduleTable(result.Schedule, req.Report))
			printIssues(out, result.Issues)
			if app.Verbose {
				printSummary(out, result)
			}

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
