package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/ranking"
	"github.com/jakechorley/shift-cover/pkg/core/shift"
	"github.com/jakechorley/shift-cover/pkg/db"
)

// EmployeeHours is one line of the monthly hours report
type EmployeeHours struct {
	ID    string
	Name  string
	Hours float64

	// Nights is the number of canonical night shifts worked in the month
	Nights int
}

// HoursReport is the accumulated hours of every employee for a month
type HoursReport struct {
	Month     string
	Average   float64
	Employees []EmployeeHours
}

// MonthlyHoursReport returns each employee's accumulated hours for month, sorted by name
func MonthlyHoursReport(ctx context.Context, store db.ScheduleStore, logger *zap.Logger, month string, includeContactHours bool) (*HoursReport, error) {
	if _, err := time.Parse(model.MonthLayout, month); err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	schedule, err := store.GetSchedule(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", month, err)
	}

	hours := ranking.MonthlyHours(schedule, month, includeContactHours)
	report := &HoursReport{
		Month:     month,
		Average:   hours.Average(),
		Employees: make([]EmployeeHours, 0, len(schedule.Employees)),
	}
	prefix := month + "-"
	for _, emp := range schedule.Employees {
		nights := 0
		for date, rec := range emp.Shifts {
			if strings.HasPrefix(date, prefix) && shift.IsNightShift(rec.Code) {
				nights++
			}
		}

		report.Employees = append(report.Employees, EmployeeHours{
			ID:     emp.ID,
			Name:   emp.Name,
			Hours:  hours.HoursFor(emp.ID),
			Nights: nights,
		})
	}

	sort.SliceStable(report.Employees, func(i, j int) bool {
		return strings.ToLower(report.Employees[i].Name) < strings.ToLower(report.Employees[j].Name)
	})

	logger.Debug("Built monthly hours report",
		zap.String("month", month),
		zap.Int("employees", len(report.Employees)),
		zap.Float64("average", report.Average))

	return report, nil
}

// EmployeeSummary identifies an employee and their roles
type EmployeeSummary struct {
	ID    string
	Name  string
	Roles []model.Role
}

// ListEmployees returns the employees of month's schedule in schedule order
func ListEmployees(ctx context.Context, store db.ScheduleStore, logger *zap.Logger, month string) ([]EmployeeSummary, error) {
	if _, err := time.Parse(model.MonthLayout, month); err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	schedule, err := store.GetSchedule(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for %s: %w", month, err)
	}

	summaries := make([]EmployeeSummary, 0, len(schedule.Employees))
	for _, emp := range schedule.Employees {
		summaries = append(summaries, EmployeeSummary{ID: emp.ID, Name: emp.Name, Roles: emp.Roles})
	}

	logger.Debug("Listed employees", zap.String("month", month), zap.Int("count", len(summaries)))

	return summaries, nil
}
