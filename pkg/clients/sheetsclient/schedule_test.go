package sheetsclient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-cover/internal/config"
	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/db"
)

// fakeValues serves fixed tab contents
type fakeValues struct {
	tabs map[string][][]interface{}
}

func (f *fakeValues) GetValues(spreadsheetID, sheetRange string) ([][]interface{}, error) {
	values, ok := f.tabs[sheetRange]
	if !ok {
		return nil, fmt.Errorf("no tab %s", sheetRange)
	}
	return values, nil
}

func rosterValues() [][]interface{} {
	return [][]interface{}{
		{"ID", "Name", "Roles", "2024-01-31", "2024-03-04", "2024-03-05", "Notes"},
		{"e1", "Ana", "LIDER", "7-19", "8-16", "F", "x"},
		{"e2", "Bea", "", "", "20-8", "20-8"},
		{"", "Blank row"},
		{"e3", "Carla", "STAFF, LIDER", "", "AT"},
	}
}

func TestParseRoster(t *testing.T) {
	from, to, err := db.Horizon("2024-03")
	require.NoError(t, err)

	employees, shifts, err := parseRoster(rosterValues(), from, to)
	require.NoError(t, err)

	require.Len(t, employees, 3)
	assert.Equal(t, db.EmployeeRow{ID: "e1", Name: "Ana", Roles: []string{"LIDER"}}, employees[0])
	assert.Nil(t, employees[1].Roles)
	assert.Equal(t, []string{"STAFF", "LIDER"}, employees[2].Roles)

	assert.Equal(t, []db.ShiftRow{
		{EmployeeID: "e1", Date: "2024-03-04", Code: "8-16"},
		{EmployeeID: "e1", Date: "2024-03-05", Code: "F"},
		{EmployeeID: "e2", Date: "2024-03-04", Code: "20-8"},
		{EmployeeID: "e2", Date: "2024-03-05", Code: "20-8"},
		{EmployeeID: "e3", Date: "2024-03-04", Code: "AT"},
	}, shifts)
}

func TestParseRoster_MissingHeader(t *testing.T) {
	raw := [][]interface{}{{"ID", "Name", "2024-03-04"}}

	_, _, err := parseRoster(raw, time.Time{}, time.Now())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing required field in header: Roles")
}

func TestParsePreferences(t *testing.T) {
	raw := [][]interface{}{
		{"Employee ID", "Date", "Type", "Weight", "Preferred", "Avoided", "Recurrence"},
		{"e1", "2024-03-06", "PREFERENCE", "5", "7-19, 8-16", "", ""},
		{"e2", "2024-03-03", "preference", "10", "", "20-8", "FREQ=WEEKLY;BYDAY=SU"},
		{""},
	}

	prefs, err := parsePreferences(raw)
	require.NoError(t, err)
	require.Len(t, prefs, 2)

	assert.Equal(t, db.PreferenceRow{
		EmployeeID: "e1",
		Date:       "2024-03-06",
		Type:       "PREFERENCE",
		Weight:     5,
		Preferred:  []string{"7-19", "8-16"},
	}, prefs[0])
	assert.Equal(t, []string{"20-8"}, prefs[1].Avoided)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SU", prefs[1].Recurrence)
}

func TestParsePreferences_InvalidWeight(t *testing.T) {
	raw := [][]interface{}{
		{"Employee ID", "Date", "Type", "Weight", "Preferred", "Avoided", "Recurrence"},
		{"e1", "2024-03-06", "PREFERENCE", "high"},
	}

	_, err := parsePreferences(raw)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParseContactHours(t *testing.T) {
	raw := [][]interface{}{
		{"Employee ID", "Month", "Hours"},
		{"e1", "2024-03", "6.5"},
		{"e2", "2024-03", 4},
	}

	rows, err := parseContactHours(raw)
	require.NoError(t, err)
	assert.Equal(t, []db.ContactHoursRow{
		{EmployeeID: "e1", Month: "2024-03", Hours: 6.5},
		{EmployeeID: "e2", Month: "2024-03", Hours: 4},
	}, rows)
}

func TestScheduleStore_GetSchedule(t *testing.T) {
	store := &ScheduleStore{
		values: &fakeValues{tabs: map[string][][]interface{}{
			"Roster": rosterValues(),
			"Prefs": {
				{"Employee ID", "Date", "Type", "Weight", "Preferred", "Avoided", "Recurrence"},
				{"e2", "2024-03-06", "PREFERENCE", "8", "", "", ""},
			},
			"Contact": {
				{"Employee ID", "Month", "Hours"},
				{"e1", "2024-03", "3"},
			},
		}},
		cfg: config.SheetsConfig{
			SpreadsheetID:   "sheet",
			RosterTab:       "Roster",
			PreferencesTab:  "Prefs",
			ContactHoursTab: "Contact",
		},
		codes: model.DefaultCodeTable(),
	}

	schedule, err := store.GetSchedule(context.Background(), "2024-03")
	require.NoError(t, err)
	require.Len(t, schedule.Employees, 3)

	ana := schedule.Employee("e1")
	assert.True(t, ana.HasRole(model.RoleLeader))
	assert.Equal(t, 8.0, ana.Shifts["2024-03-04"].Hours)
	assert.Equal(t, 3.0, ana.MonthlyContactHours["2024-03"])

	bea := schedule.Employee("e2")
	require.Len(t, bea.Preferences, 1)
	assert.Equal(t, 8, bea.Preferences[0].Weight)

	carla := schedule.Employee("e3")
	assert.Equal(t, model.StatusSickLeave, carla.Shifts["2024-03-04"].Status)
}

func TestScheduleStore_GetSchedule_Errors(t *testing.T) {
	store := &ScheduleStore{
		values: &fakeValues{tabs: map[string][][]interface{}{"Roster": {}}},
		cfg:    config.SheetsConfig{SpreadsheetID: "sheet", RosterTab: "Roster"},
		codes:  model.DefaultCodeTable(),
	}

	_, err := store.GetSchedule(context.Background(), "2024-03")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "roster tab is empty")

	store.cfg.RosterTab = "Missing"
	_, err = store.GetSchedule(context.Background(), "2024-03")
	assert.Error(t, err)

	_, err = store.GetSchedule(context.Background(), "March")
	assert.Error(t, err)
}
