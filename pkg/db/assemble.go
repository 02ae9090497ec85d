package db

import (
	"fmt"
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/model"
)

const (
	// HistoryDays is how far before the month suppliers must load shifts.
	// Covers the previous weekend, the consecutive-day lookback and the first week.
	HistoryDays = 14

	// LookaheadDays is how far after the month suppliers must load shifts
	LookaheadDays = 7
)

// Horizon returns the first and last dates of shift history needed to score
// any date in month
func Horizon(month string) (time.Time, time.Time, error) {
	start, err := time.Parse(model.MonthLayout, month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	end := start.AddDate(0, 1, -1)
	return start.AddDate(0, 0, -HistoryDays), end.AddDate(0, 0, LookaheadDays), nil
}

// Assemble validates supplier rows and builds the schedule for month.
// Employees keep the order in which they were read.
func Assemble(month string, codes model.CodeTable, rows Rows) (*model.Schedule, error) {
	b, err := model.NewBuilder(month, codes)
	if err != nil {
		return nil, err
	}

	for _, e := range rows.Employees {
		if err := b.AddEmployee(model.EmployeeInput{ID: e.ID, Name: e.Name, Roles: e.Roles}); err != nil {
			return nil, err
		}
	}

	for _, s := range rows.Shifts {
		err := b.AddShift(model.ShiftInput{
			EmployeeID:   s.EmployeeID,
			Date:         s.Date,
			Code:         s.Code,
			Hours:        s.Hours,
			StartHour:    s.StartHour,
			EndHour:      s.EndHour,
			ContactHours: s.ContactHours,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, p := range rows.Preferences {
		err := b.AddPreference(model.PreferenceInput{
			EmployeeID: p.EmployeeID,
			Date:       p.Date,
			Type:       p.Type,
			Weight:     p.Weight,
			Preferred:  p.Preferred,
			Avoided:    p.Avoided,
			Recurrence: p.Recurrence,
		})
		if err != nil {
			return nil, err
		}
	}

	for _, c := range rows.ContactHours {
		if err := b.AddContactHours(model.ContactHoursInput{EmployeeID: c.EmployeeID, Month: c.Month, Hours: c.Hours}); err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}
