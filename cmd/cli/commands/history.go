package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/utils/render"
)

// HistoryCmd creates the history command
func HistoryCmd(app *AppContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived schedule runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := app.Database()
			if err != nil {
				return err
			}

			runs, err := services.ListArchivedRuns(app.Ctx, database, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No archived runs")
				return nil
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}

			fmt.Fprintln(out, render.Table(
				[]string{"GENERATED", "MONTH", "WEEKDAY", "SOURCE", "PEOPLE", "DATES", "SHORT", "RUN ID"},
				runRows(runs)))

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")

	return cmd
}

func runRows(runs []db.ScheduleRun) [][]string {
	rows := make([][]string, len(runs))
	for i, run := range runs {
		rows[i] = []string{
			run.GeneratedAt.Local().Format("2006-01-02 15:04"),
			run.SeedKey,
			run.Weekday,
			run.Source,
			strconv.Itoa(run.PeopleCount),
			strconv.Itoa(run.DateCount),
			strconv.Itoa(run.ShortfallCount),
			run.ID,
		}
	}
	return rows
}
