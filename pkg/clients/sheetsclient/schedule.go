package sheetsclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jakechorley/shift-cover/internal/config"
	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/db"
)

// Roster tab columns. Every other header that is an ISO date is a day column
// whose cells hold shift codes.
const (
	rosterID    = "ID"
	rosterName  = "Name"
	rosterRoles = "Roles"
)

// Expected column names in the preferences tab
var preferenceFields = []string{
	"Employee ID",
	"Date",
	"Type",
	"Weight",
	"Preferred",
	"Avoided",
	"Recurrence",
}

// Expected column names in the contact hours tab
var contactHoursFields = []string{
	"Employee ID",
	"Month",
	"Hours",
}

// valuesGetter reads spreadsheet ranges
type valuesGetter interface {
	GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error)
}

// ScheduleStore reads schedules from a spreadsheet
type ScheduleStore struct {
	values valuesGetter
	cfg    config.SheetsConfig
	codes  model.CodeTable
}

// NewScheduleStore creates a schedule store reading the configured tabs
func NewScheduleStore(client *Client, cfg config.SheetsConfig, codes model.CodeTable) *ScheduleStore {
	return &ScheduleStore{values: client, cfg: cfg, codes: codes}
}

// GetSchedule reads the roster, preferences and contact hours tabs for month.
// Day columns outside the month's horizon are ignored.
func (s *ScheduleStore) GetSchedule(ctx context.Context, month string) (*model.Schedule, error) {
	from, to, err := db.Horizon(month)
	if err != nil {
		return nil, err
	}

	values, err := s.values.GetValues(s.cfg.SpreadsheetID, s.cfg.RosterTab)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster data: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("roster tab is empty")
	}

	var rows db.Rows
	rows.Employees, rows.Shifts, err = parseRoster(values, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	if s.cfg.PreferencesTab != "" {
		values, err := s.values.GetValues(s.cfg.SpreadsheetID, s.cfg.PreferencesTab)
		if err != nil {
			return nil, fmt.Errorf("failed to get preference data: %w", err)
		}
		if rows.Preferences, err = parsePreferences(values); err != nil {
			return nil, fmt.Errorf("failed to parse preferences: %w", err)
		}
	}

	if s.cfg.ContactHoursTab != "" {
		values, err := s.values.GetValues(s.cfg.SpreadsheetID, s.cfg.ContactHoursTab)
		if err != nil {
			return nil, fmt.Errorf("failed to get contact hours data: %w", err)
		}
		if rows.ContactHours, err = parseContactHours(values); err != nil {
			return nil, fmt.Errorf("failed to parse contact hours: %w", err)
		}
	}

	schedule, err := db.Assemble(month, s.codes, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble schedule for %s: %w", month, err)
	}
	return schedule, nil
}

// parseRoster converts the roster tab into employee and shift rows.
// Rows without an ID are skipped, as are empty cells.
func parseRoster(raw [][]interface{}, from, to time.Time) ([]db.EmployeeRow, []db.ShiftRow, error) {
	if len(raw) < 1 {
		return nil, nil, fmt.Errorf("no header row found")
	}

	fieldIndexes, err := headerIndexes(raw[0], []string{rosterID, rosterName, rosterRoles})
	if err != nil {
		return nil, nil, err
	}

	// Day columns by index
	dates := make(map[int]string)
	for i, cell := range raw[0] {
		header := cellString(cell)
		date, err := time.Parse(model.DateLayout, header)
		if err != nil || date.Before(from) || date.After(to) {
			continue
		}
		dates[i] = header
	}

	var employees []db.EmployeeRow
	var shifts []db.ShiftRow
	for _, row := range raw[1:] {
		id := fieldValue(fieldIndexes, rosterID, row)
		if id == "" {
			continue
		}

		employees = append(employees, db.EmployeeRow{
			ID:    id,
			Name:  fieldValue(fieldIndexes, rosterName, row),
			Roles: splitList(fieldValue(fieldIndexes, rosterRoles, row)),
		})

		for i := range row {
			date, ok := dates[i]
			if !ok {
				continue
			}
			code := cellString(row[i])
			if code == "" {
				continue
			}
			shifts = append(shifts, db.ShiftRow{EmployeeID: id, Date: date, Code: code})
		}
	}

	return employees, shifts, nil
}

// parsePreferences converts the preferences tab into preference rows
func parsePreferences(raw [][]interface{}) ([]db.PreferenceRow, error) {
	if len(raw) < 1 {
		return nil, nil
	}

	fieldIndexes, err := headerIndexes(raw[0], preferenceFields)
	if err != nil {
		return nil, err
	}

	var preferences []db.PreferenceRow
	for i, row := range raw[1:] {
		employeeID := fieldValue(fieldIndexes, "Employee ID", row)
		if employeeID == "" {
			continue
		}

		weight, err := strconv.Atoi(fieldValue(fieldIndexes, "Weight", row))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid weight: %w", i+2, err)
		}

		preferences = append(preferences, db.PreferenceRow{
			EmployeeID: employeeID,
			Date:       fieldValue(fieldIndexes, "Date", row),
			Type:       fieldValue(fieldIndexes, "Type", row),
			Weight:     weight,
			Preferred:  splitList(fieldValue(fieldIndexes, "Preferred", row)),
			Avoided:    splitList(fieldValue(fieldIndexes, "Avoided", row)),
			Recurrence: fieldValue(fieldIndexes, "Recurrence", row),
		})
	}

	return preferences, nil
}

// parseContactHours converts the contact hours tab into contact hours rows
func parseContactHours(raw [][]interface{}) ([]db.ContactHoursRow, error) {
	if len(raw) < 1 {
		return nil, nil
	}

	fieldIndexes, err := headerIndexes(raw[0], contactHoursFields)
	if err != nil {
		return nil, err
	}

	var contactHours []db.ContactHoursRow
	for i, row := range raw[1:] {
		employeeID := fieldValue(fieldIndexes, "Employee ID", row)
		if employeeID == "" {
			continue
		}

		hours, err := strconv.ParseFloat(fieldValue(fieldIndexes, "Hours", row), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid hours: %w", i+2, err)
		}

		contactHours = append(contactHours, db.ContactHoursRow{
			EmployeeID: employeeID,
			Month:      fieldValue(fieldIndexes, "Month", row),
			Hours:      hours,
		})
	}

	return contactHours, nil
}

// headerIndexes maps each required field to its column in the header row
func headerIndexes(headerRow []interface{}, fields []string) (map[string]int, error) {
	fieldIndexes := make(map[string]int)
	for _, field := range fields {
		index := -1
		for i, cell := range headerRow {
			if cellString(cell) == field {
				index = i
				break
			}
		}
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}
	return fieldIndexes, nil
}

func fieldValue(fieldIndexes map[string]int, field string, row []interface{}) string {
	index, ok := fieldIndexes[field]
	if !ok || index >= len(row) {
		return ""
	}
	return cellString(row[index])
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// splitList splits a comma-separated cell, dropping empty entries
func splitList(cell string) []string {
	var items []string
	for _, item := range strings.Split(cell, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
