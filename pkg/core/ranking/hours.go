package ranking

import (
	"strings"

	"github.com/jakechorley/shift-cover/pkg/core/model"
)

// HoursIndex is the accumulated hours of every employee for one month.
// It is computed once per schedule and read by every candidate's scoring.
type HoursIndex struct {
	Month   string
	hours   map[string]float64
	average float64
}

// MonthlyHours accumulates each employee's hours for month ("2006-01").
//
// Shift hours are always counted. With includeContactHours the per-shift contact
// hours and the manually recorded monthly contact hours are added too.
func MonthlyHours(schedule *model.Schedule, month string, includeContactHours bool) *HoursIndex {
	idx := &HoursIndex{
		Month: month,
		hours: make(map[string]float64, len(schedule.Employees)),
	}
	prefix := month + "-"

	total := 0.0
	for _, emp := range schedule.Employees {
		sum := 0.0
		for date, rec := range emp.Shifts {
			if !strings.HasPrefix(date, prefix) {
				continue
			}
			sum += rec.Hours
			if includeContactHours {
				sum += rec.ContactHours
			}
		}
		if includeContactHours {
			sum += emp.MonthlyContactHours[month]
		}

		idx.hours[emp.ID] = sum
		total += sum
	}

	if len(schedule.Employees) > 0 {
		idx.average = total / float64(len(schedule.Employees))
	}
	return idx
}

// HoursFor returns the employee's hours, zero for unknown employees
func (h *HoursIndex) HoursFor(employeeID string) float64 {
	return h.hours[employeeID]
}

// Average returns the mean hours across all employees in the schedule
func (h *HoursIndex) Average() float64 {
	return h.average
}
