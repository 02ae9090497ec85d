package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/shift"
)

// staticBalance is a fixed monthly hours context
type staticBalance struct {
	hours   map[string]float64
	average float64
}

func (b staticBalance) HoursFor(employeeID string) float64 {
	return b.hours[employeeID]
}

func (b staticBalance) Average() float64 {
	return b.average
}

func newEmployee(t *testing.T, roles []string, shifts map[string]string) *model.Employee {
	t.Helper()
	b, err := model.NewBuilder("2024-03", model.DefaultCodeTable())
	require.NoError(t, err)
	require.NoError(t, b.AddEmployee(model.EmployeeInput{ID: "e1", Name: "Ana", Roles: roles}))
	for date, code := range shifts {
		require.NoError(t, b.AddShift(model.ShiftInput{EmployeeID: "e1", Date: date, Code: code}))
	}
	return b.Build().Employee("e1")
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func newEvaluation(t *testing.T, emp *model.Employee, date, code string) *Evaluation {
	t.Helper()
	ev := &Evaluation{
		Employee: emp,
		Date:     mustDate(t, date),
		Code:     code,
		Status:   model.DefaultCodeTable().Classify(code),
	}
	ev.Range, ev.HasRange = shift.Parse(code)
	return ev
}
