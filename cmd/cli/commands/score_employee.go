package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cover/pkg/core/services"
)

// ScoreEmployeeCmd creates the scoreEmployee command
func ScoreEmployeeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scoreEmployee <date> <shift_type> <employee_id>",
		Short: "Explain one employee's score for a shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactHours, _ := cmd.Flags().GetBool("contact-hours")

			app.Logger.Debug("scoreEmployee command", zap.Bool("contact_hours", contactHours))

			result, err := services.ScoreEmployee(app.Ctx, app.Store, app.Logger, app.Engine, services.ScoreRequest{
				Date:                args[0],
				ShiftType:           args[1],
				EmployeeID:          args[2],
				IncludeContactHours: contactHours,
			})
			if err != nil {
				return err
			}

			printScoreResult(cmd.OutOrStdout(), args[0], args[1], result)
			return nil
		},
	}

	cmd.Flags().Bool("contact-hours", false, "Count contact hours towards monthly hours")

	return cmd
}

func printScoreResult(w io.Writer, date, shiftType string, result *services.ScoreResult) {
	fmt.Fprintf(w, "\n%s (%s) taking %s on %s\n\n", result.Employee.Name, result.Employee.ID, shiftType, date)

	if result.CanWork {
		fmt.Fprintf(w, "Score:         %s%d%s\n", scoreColor(result.Score, true), result.Score, colorReset)
	} else {
		fmt.Fprintf(w, "Score:         %sillegal%s\n", colorRed, colorReset)
	}
	fmt.Fprintf(w, "Monthly hours: %.1f (average %.1f)\n", result.MonthlyHours, result.AverageHours)

	if len(result.Reasons) == 0 {
		return
	}
	fmt.Fprintln(w, "\nReasons:")
	for _, reason := range result.Reasons {
		fmt.Fprintf(w, "  - %s\n", reason)
	}
}
