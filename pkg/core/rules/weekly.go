package rules

import (
	"sort"
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/shift"
)

const hoursPerWeek = 7 * 24

// interval is a shift as hour offsets from the start of the week
type interval struct {
	start int
	end   int
}

// CheckWeeklyRest checks that the week (Monday to Sunday) containing date keeps
// a continuous rest window of at least the weekly minimum, counting the time
// before the first shift and after the last.
func CheckWeeklyRest(emp *model.Employee, date time.Time, code string, limits Limits) Result {
	target := Day(date)

	var intervals []interval
	for i, day := range WeekDates(target) {
		var r shift.Range
		var ok bool
		if day.Equal(target) {
			r, ok = shift.Parse(code)
		} else if rec, has := emp.ShiftOn(day); has && !rec.Status.IsRest() {
			r, ok = rec.Range()
		}
		if !ok {
			continue
		}

		offset := i * 24
		iv := interval{start: offset + r.Start, end: offset + r.End}
		if r.WrapsMidnight() {
			iv.end += 24
		}
		intervals = append(intervals, iv)
	}

	if len(intervals) == 0 {
		return pass()
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	maxGap := intervals[0].start
	lastEnd := intervals[0].end
	for _, iv := range intervals[1:] {
		if gap := iv.start - lastEnd; gap > maxGap {
			maxGap = gap
		}
		if iv.end > lastEnd {
			lastEnd = iv.end
		}
	}
	if gap := hoursPerWeek - lastEnd; gap > maxGap {
		maxGap = gap
	}

	if maxGap < limits.WeeklyRestHours {
		return violation(KindWeeklyRest, "longest weekly rest is %dh (minimum %dh)", maxGap, limits.WeeklyRestHours)
	}
	return pass()
}

// CheckWeeklyHours checks the total hours of the week containing date against
// the weekly cap. Records whose code is not a time range count their recorded hours.
func CheckWeeklyHours(emp *model.Employee, date time.Time, code string, limits Limits) Result {
	total := WeeklyHours(emp, date, code)
	if total > limits.MaxWeeklyHours {
		return violation(KindWeeklyHours, "%gh scheduled this week (limit %gh)", total, limits.MaxWeeklyHours)
	}
	return pass()
}

// WeeklyHours sums the hours of the week containing date with the proposed
// code substituted on date
func WeeklyHours(emp *model.Employee, date time.Time, code string) float64 {
	target := Day(date)
	total := 0.0

	for _, day := range WeekDates(target) {
		if day.Equal(target) {
			if r, ok := shift.Parse(code); ok {
				total += float64(r.Duration())
			}
			continue
		}

		rec, ok := emp.ShiftOn(day)
		if !ok || rec.Status.IsRest() {
			continue
		}
		if r, ok := rec.Range(); ok {
			total += float64(r.Duration())
		} else {
			total += rec.Hours
		}
	}

	return total
}
