package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cover/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// FindCoverCmd creates the findCover command
func FindCoverCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findCover <date> <shift_type> <employee_out_id>",
		Short: "Rank replacements for an employee's shift",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			contactHours, _ := cmd.Flags().GetBool("contact-hours")
			limit, _ := cmd.Flags().GetInt("limit")
			if !cmd.Flags().Changed("limit") {
				limit = app.Cfg.DefaultLimit
			}

			app.Logger.Debug("findCover command",
				zap.Bool("contact_hours", contactHours),
				zap.Int("limit", limit))

			result, err := services.FindCover(app.Ctx, app.Store, app.Logger, app.Engine, services.CoverRequest{
				Date:                args[0],
				ShiftType:           args[1],
				EmployeeOutID:       args[2],
				IncludeContactHours: contactHours,
				Limit:               limit,
			})
			if err != nil {
				return err
			}

			printCoverResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().Bool("contact-hours", false, "Count contact hours towards monthly hours")
	cmd.Flags().Int("limit", 0, "Maximum number of candidates to show (defaults to config defaultLimit, 0 shows all)")

	return cmd
}

func printCoverResult(w io.Writer, result *services.CoverResult) {
	fmt.Fprintf(w, "\nCover for %s (%s) on %s, shift %s\n\n",
		result.EmployeeOut.Name, result.EmployeeOut.ID, result.Date, result.ShiftType)

	if len(result.Candidates) == 0 {
		fmt.Fprintln(w, "No eligible employees.")
		printLeaveCodes(w, result.ExcludedLeaveCodes)
		return
	}

	nameColWidth := 20
	for _, c := range result.Candidates {
		if len(c.Name) > nameColWidth {
			nameColWidth = len(c.Name)
		}
	}
	nameColWidth += 2

	fmt.Fprintf(w, "%-4s%-*s%-8s%-8s%s\n", "#", nameColWidth, "Employee", "Score", "Hours", "Reasons")
	fmt.Fprintln(w, strings.Repeat("-", nameColWidth+30))

	for i, c := range result.Candidates {
		score := fmt.Sprintf("%d", c.Score)
		if !c.Details.CanWork {
			score = "illegal"
		}
		fmt.Fprintf(w, "%-4d%-*s%s%-8s%s%-8.1f%s\n",
			i+1,
			nameColWidth, c.Name,
			scoreColor(c.Score, c.Details.CanWork), score, colorReset,
			c.Details.MonthlyHours,
			strings.Join(c.Reasons, "; "))
	}

	fmt.Fprintf(w, "\n%d of %d candidates can work", result.Eligible, result.Total)
	if len(result.Candidates) < result.Total {
		fmt.Fprintf(w, " (showing top %d)", len(result.Candidates))
	}
	fmt.Fprintln(w)
	printLeaveCodes(w, result.ExcludedLeaveCodes)
}

func printLeaveCodes(w io.Writer, codes []string) {
	if len(codes) == 0 {
		return
	}
	fmt.Fprintf(w, "%sEmployees on leave (%s) are not ranked%s\n", colorDim, strings.Join(codes, ", "), colorReset)
}

// scoreColor returns the color for a score: red when illegal, green at 80 or above,
// yellow at 50 or above and dim otherwise
func scoreColor(score int, canWork bool) string {
	switch {
	case !canWork:
		return colorRed
	case score >= 80:
		return colorGreen
	case score >= 50:
		return colorYellow
	default:
		return colorDim
	}
}
