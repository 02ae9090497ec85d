// Package rules implements the labour-law checks run against an employee's
// shift history and a proposed shift. Every check is a pure function and
// malformed codes never fail a check: a rule that cannot be evaluated passes.
package rules

import (
	"fmt"
	"time"
)

// Kind identifies which rule a result violates
type Kind int

const (
	KindNone Kind = iota
	// KindDailyRest is a rest gap between consecutive days below the daily minimum
	KindDailyRest
	// KindWeeklyRest is a week without a long enough continuous rest window
	KindWeeklyRest
	// KindWeeklyHours is a week whose total hours exceed the cap
	KindWeeklyHours
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDailyRest:
		return "dailyRest"
	case KindWeeklyRest:
		return "weeklyRest"
	case KindWeeklyHours:
		return "weeklyHours"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result is the outcome of a single check
type Result struct {
	Valid  bool
	Kind   Kind
	Reason string
}

func pass() Result {
	return Result{Valid: true, Kind: KindNone}
}

func violation(kind Kind, format string, args ...any) Result {
	return Result{Valid: false, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Limits are the legal thresholds the checks enforce
type Limits struct {
	DailyRestHours  int
	WeeklyRestHours int
	MaxWeeklyHours  float64
}

// DefaultLimits returns 11h daily rest, 35h weekly rest and a 40h week
func DefaultLimits() Limits {
	return Limits{
		DailyRestHours:  11,
		WeeklyRestHours: 35,
		MaxWeeklyHours:  40,
	}
}

// Day truncates t to UTC midnight
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the ISO week containing t
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekDates returns Monday to Sunday of the ISO week containing t
func WeekDates(t time.Time) []time.Time {
	start := WeekStart(t)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// IsWeekend reports whether t is a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
