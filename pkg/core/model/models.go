package model

import (
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/shift"
)

const (
	// DateLayout is the ISO date format used for schedule keys
	DateLayout = "2006-01-02"

	// MonthLayout is the format of month keys (e.g. "2024-03")
	MonthLayout = "2006-01"
)

// PreferenceTypePreference marks preference entries that participate in scoring
const PreferenceTypePreference = "PREFERENCE"

// ShiftRecord is the shift an employee holds on one date
type ShiftRecord struct {
	Date   string
	Code   string
	Status Status

	// Hours worked, derived from the code's range when not supplied
	Hours float64

	// StartHour and EndHour are explicit hour bounds (both nil when not recorded)
	StartHour *int
	EndHour   *int

	// ContactHours count toward the separate contact-hours quota
	ContactHours float64
}

// Range returns the hour bounds of the record, preferring the explicit
// start/end fields over the parsed code
func (r ShiftRecord) Range() (shift.Range, bool) {
	if r.StartHour != nil && r.EndHour != nil {
		return shift.Range{Start: *r.StartHour, End: *r.EndHour}, true
	}
	return shift.Parse(r.Code)
}

// Preference is a weighted shift preference for one employee and date.
// With neither Preferred nor Avoided set it means the employee prefers the day off.
type Preference struct {
	EmployeeID string
	Date       string
	Type       string
	Weight     int
	Preferred  []string
	Avoided    []string
}

// Employee is a member of staff with their shift history for the horizon
type Employee struct {
	ID    string
	Name  string
	Roles []Role

	// Shifts keyed by ISO date, at most one per date
	Shifts map[string]ShiftRecord

	Preferences []Preference

	// MonthlyContactHours are manually recorded contact hours keyed by month ("2006-01")
	MonthlyContactHours map[string]float64
}

// HasRole reports whether the employee holds the role
func (e *Employee) HasRole(role Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ShiftOn returns the employee's record for a date
func (e *Employee) ShiftOn(date time.Time) (ShiftRecord, bool) {
	rec, ok := e.Shifts[date.Format(DateLayout)]
	return rec, ok
}

// Schedule is the set of employees for one scheduling horizon
type Schedule struct {
	Month     string
	Employees []*Employee
}

// Employee returns the employee with the given ID, or nil
func (s *Schedule) Employee(id string) *Employee {
	for _, e := range s.Employees {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// ParseDate parses an ISO date into a UTC midnight time
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}
