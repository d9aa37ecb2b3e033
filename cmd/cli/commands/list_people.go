package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
	"github.com/jakechorley/duty-roster/pkg/utils/render"
)

// ListPeopleCmd creates the listPeople command
func ListPeopleCmd(app *AppContext) *cobra.Command {
	var source, master string

	cmd := &cobra.Command{
		Use:   "listPeople",
		Short: "List everyone on the roster with the roles they can serve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := rosterSource(app, source, master)
			if err != nil {
				return err
			}

			people, err := services.ListPeople(app.Ctx, src, app.Logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Table([]string{"NAME", "PRIVILEGED", "ROLES"}, peopleRows(people)))
			fmt.Fprintf(out, "%d people\n", len(people))

			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", sourceXlsx, "Roster source: xlsx or sheets")
	cmd.Flags().StringVar(&master, "master", "Master.xlsx", "Path to Master.xlsx")

	return cmd
}

func peopleRows(people []services.PersonSummary) [][]string {
	rows := make([][]string, len(people))
	for i, p := range people {
		privileged := "no"
		if p.Privileged {
			privileged = "yes"
		}
		roles := strings.Join(p.Roles, ", ")
		if roles == "" {
			roles = "-"
		}
		rows[i] = []string{p.Name, privileged, roles}
	}
	return rows
}
