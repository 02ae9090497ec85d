package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-cover/pkg/core/model"
)

func TestHorizon(t *testing.T) {
	from, to, err := Horizon("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-16", from.Format(model.DateLayout))
	assert.Equal(t, "2024-04-07", to.Format(model.DateLayout))

	_, _, err = Horizon("March")
	assert.Error(t, err)
}

func TestAssemble(t *testing.T) {
	hours := 10.0
	rows := Rows{
		Employees: []EmployeeRow{
			{ID: "e2", Name: "Bea", Roles: []string{"LIDER"}},
			{ID: "e1", Name: "Ana"},
		},
		Shifts: []ShiftRow{
			{EmployeeID: "e1", Date: "2024-03-01", Code: "7-19"},
			{EmployeeID: "e1", Date: "2024-03-02", Code: "F"},
			{EmployeeID: "e2", Date: "2024-03-01", Code: "8-16", Hours: &hours},
		},
		Preferences: []PreferenceRow{
			{EmployeeID: "e1", Date: "2024-03-05", Type: "preference", Weight: 4, Preferred: []string{"7-19"}},
		},
		ContactHours: []ContactHoursRow{
			{EmployeeID: "e2", Month: "2024-03", Hours: 3},
		},
	}

	schedule, err := Assemble("2024-03", model.DefaultCodeTable(), rows)
	require.NoError(t, err)

	assert.Equal(t, "2024-03", schedule.Month)
	require.Len(t, schedule.Employees, 2)
	assert.Equal(t, "e2", schedule.Employees[0].ID)
	assert.True(t, schedule.Employees[0].HasRole(model.RoleLeader))

	ana := schedule.Employee("e1")
	require.NotNil(t, ana)
	assert.Equal(t, 12.0, ana.Shifts["2024-03-01"].Hours)
	assert.Equal(t, model.StatusDayOff, ana.Shifts["2024-03-02"].Status)
	require.Len(t, ana.Preferences, 1)
	assert.Equal(t, model.PreferenceTypePreference, ana.Preferences[0].Type)

	bea := schedule.Employee("e2")
	assert.Equal(t, 10.0, bea.Shifts["2024-03-01"].Hours)
	assert.Equal(t, 3.0, bea.MonthlyContactHours["2024-03"])
}

func TestAssemble_RejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		rows Rows
	}{
		{
			name: "shift for unknown employee",
			rows: Rows{Shifts: []ShiftRow{{EmployeeID: "ghost", Date: "2024-03-01", Code: "7-19"}}},
		},
		{
			name: "unknown role",
			rows: Rows{Employees: []EmployeeRow{{ID: "e1", Name: "Ana", Roles: []string{"CHEF"}}}},
		},
		{
			name: "duplicate shift",
			rows: Rows{
				Employees: []EmployeeRow{{ID: "e1", Name: "Ana"}},
				Shifts: []ShiftRow{
					{EmployeeID: "e1", Date: "2024-03-01", Code: "7-19"},
					{EmployeeID: "e1", Date: "2024-03-01", Code: "F"},
				},
			},
		},
		{
			name: "bad contact hours month",
			rows: Rows{
				Employees:    []EmployeeRow{{ID: "e1", Name: "Ana"}},
				ContactHours: []ContactHoursRow{{EmployeeID: "e1", Month: "03/2024", Hours: 1}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble("2024-03", model.DefaultCodeTable(), tt.rows)
			assert.Error(t, err)
		})
	}
}
