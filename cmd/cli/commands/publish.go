package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// PublishCmd creates the publish command
func PublishCmd(app *AppContext) *cobra.Command {
	var flags scheduleFlags

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Generate the monthly schedule and publish it to the schedule spreadsheet",
		Long: `Build the schedule and write it into a "Jadwal <Month> <Year>" tab of the configured
schedule spreadsheet. An existing tab for the month is overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}
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

			title, err := services.PublishSchedule(app.Ctx, client, app.Cfg, app.Logger, result.Schedule)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n✓ Schedule published to tab %q\n", title)
			fmt.Fprintf(out, "https://docs.google.com/spreadsheets/d/%s\n", app.Cfg.Sheets.ScheduleSheetID)
			printIssues(out, result.Issues)

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
