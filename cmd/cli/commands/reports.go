package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/services"
)

// MonthlyHoursCmd creates the monthlyHours command
func MonthlyHoursCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthlyHours <month>",
		Short: "Show every employee's accumulated hours for a month (YYYY-MM)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactHours, _ := cmd.Flags().GetBool("contact-hours")

			report, err := services.MonthlyHoursReport(app.Ctx, app.Store, app.Logger, args[0], contactHours)
			if err != nil {
				return err
			}

			printHoursReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().Bool("contact-hours", false, "Count contact hours towards monthly hours")

	return cmd
}

func printHoursReport(w io.Writer, report *services.HoursReport) {
	fmt.Fprintf(w, "\nMonthly hours for %s (average %.1f)\n\n", report.Month, report.Average)

	for _, e := range report.Employees {
		color := ""
		switch {
		case e.Hours > report.Average+5:
			color = colorYellow
		case e.Hours < report.Average-5:
			color = colorGreen
		}
		fmt.Fprintf(w, "%s%-24s %-12s %7.1f %3d nights%s\n", color, e.Name, e.ID, e.Hours, e.Nights, colorReset)
	}
}

// ListEmployeesCmd creates the listEmployees command
func ListEmployeesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listEmployees <month>",
		Short: "List the employees in a month's schedule (YYYY-MM)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := services.ListEmployees(app.Ctx, app.Store, app.Logger, args[0])
			if err != nil {
				return err
			}

			printEmployees(cmd.OutOrStdout(), employees)
			return nil
		},
	}
}

func printEmployees(w io.Writer, employees []services.EmployeeSummary) {
	fmt.Fprintf(w, "\nFound %d employees:\n\n", len(employees))
	for _, e := range employees {
		fmt.Fprintf(w, "- %s (%s)%s\n", e.Name, e.ID, rolesLabel(e.Roles))
	}
}

func rolesLabel(roles []model.Role) string {
	if len(roles) == 0 {
		return ""
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return " [" + strings.Join(names, ", ") + "]"
}
