// Package ranking orders the employees of a schedule as replacements for an
// absent colleague.
package ranking

import (
	"sort"
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/rules"
	"github.com/jakechorley/shift-cover/pkg/core/scoring"
)

// Request describes the shift that needs covering
type Request struct {
	Date          time.Time
	ShiftType     string
	EmployeeOutID string

	// IncludeContactHours adds contact hours to the monthly balance
	IncludeContactHours bool
}

// Details is the context attached to a candidate
type Details struct {
	MonthlyHours float64
	CanWork      bool
}

// Candidate is one ranked replacement
type Candidate struct {
	EmployeeID string
	Name       string
	Score      int
	Reasons    []string
	Details    Details
}

// Rank scores every eligible employee for the request and returns them by
// descending score. Employees with equal scores keep their schedule order.
func Rank(req Request, schedule *model.Schedule, scorer *scoring.Scorer) []Candidate {
	month := rules.Day(req.Date).Format(model.MonthLayout)
	return RankWithHours(req, schedule, scorer, MonthlyHours(schedule, month, req.IncludeContactHours))
}

// RankWithHours is Rank with a precomputed hours index for the target's month
func RankWithHours(req Request, schedule *model.Schedule, scorer *scoring.Scorer, hours *HoursIndex) []Candidate {
	date := rules.Day(req.Date)
	candidates := make([]Candidate, 0, len(schedule.Employees))

	for _, emp := range schedule.Employees {
		if !eligible(emp, date, req.EmployeeOutID) {
			continue
		}

		res := scorer.Score(emp, date, req.ShiftType, hours)
		candidates = append(candidates, Candidate{
			EmployeeID: emp.ID,
			Name:       emp.Name,
			Score:      res.Score,
			Reasons:    res.Reasons,
			Details: Details{
				MonthlyHours: hours.HoursFor(emp.ID),
				CanWork:      res.Score > scoring.IllegalScore,
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// eligible excludes the outgoing employee, anyone already working on the date
// and anyone on leave
func eligible(emp *model.Employee, date time.Time, outID string) bool {
	if emp.ID == outID {
		return false
	}
	rec, ok := emp.ShiftOn(date)
	if !ok {
		return true
	}
	return !rec.Status.IsWorking() && !rec.Status.IsLeave()
}
