package rules

import (
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/shift"
)

// CheckRestBefore checks the rest between the employee's shift on the previous
// day and the proposed shift.
//
// When the previous shift crosses midnight the gap is proposedStart - previousEnd,
// otherwise (24 - previousEnd) + proposedStart.
func CheckRestBefore(emp *model.Employee, date time.Time, code string, limits Limits) Result {
	prev, ok := emp.ShiftOn(Day(date).AddDate(0, 0, -1))
	if !ok || prev.Status.IsRest() {
		return pass()
	}

	prevRange, ok := prev.Range()
	if !ok {
		return pass()
	}
	proposed, ok := shift.Parse(code)
	if !ok {
		return pass()
	}

	var gap int
	if prevRange.WrapsMidnight() {
		gap = proposed.Start - prevRange.End
	} else {
		gap = (24 - prevRange.End) + proposed.Start
	}

	return checkGap(gap, limits, "previous day's shift "+prev.Code)
}

// CheckRestAfter checks the rest between the proposed shift and the employee's
// shift on the following day. Skipped when the next day is free.
func CheckRestAfter(emp *model.Employee, date time.Time, code string, limits Limits) Result {
	next, ok := emp.ShiftOn(Day(date).AddDate(0, 0, 1))
	if !ok || next.Status.IsRest() {
		return pass()
	}

	nextRange, ok := next.Range()
	if !ok {
		return pass()
	}
	proposed, ok := shift.Parse(code)
	if !ok {
		return pass()
	}

	var gap int
	if proposed.WrapsMidnight() {
		gap = nextRange.Start - proposed.End
	} else {
		gap = (24 - proposed.End) + nextRange.Start
	}

	return checkGap(gap, limits, "next day's shift "+next.Code)
}

// checkGap flags any gap below the daily minimum, including a negative gap
// where the two shifts overlap
func checkGap(gap int, limits Limits, neighbour string) Result {
	if gap >= limits.DailyRestHours {
		return pass()
	}
	if gap < 0 {
		return violation(KindDailyRest, "overlaps %s (minimum %dh rest)", neighbour, limits.DailyRestHours)
	}
	return violation(KindDailyRest, "only %dh rest around %s (minimum %dh)", gap, neighbour, limits.DailyRestHours)
}
