package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/db"
)

// GetSchedule loads the employees, shifts, preferences and contact hours for month
func (d *DB) GetSchedule(ctx context.Context, month string) (*model.Schedule, error) {
	from, to, err := db.Horizon(month)
	if err != nil {
		return nil, err
	}

	var rows db.Rows

	if rows.Employees, err = d.getEmployees(ctx); err != nil {
		return nil, err
	}
	if rows.Shifts, err = d.getShifts(ctx, from, to); err != nil {
		return nil, err
	}
	if rows.Preferences, err = d.getPreferences(ctx, from, to); err != nil {
		return nil, err
	}
	if rows.ContactHours, err = d.getContactHours(ctx, month); err != nil {
		return nil, err
	}

	schedule, err := db.Assemble(month, d.codes, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble schedule for %s: %w", month, err)
	}
	return schedule, nil
}

func (d *DB) getEmployees(ctx context.Context) ([]db.EmployeeRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, roles
		FROM employee
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []db.EmployeeRow
	for rows.Next() {
		var e db.EmployeeRow
		if err := rows.Scan(&e.ID, &e.Name, &e.Roles); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

func (d *DB) getShifts(ctx context.Context, from, to time.Time) ([]db.ShiftRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, shift_date, code, hours, start_hour, end_hour, contact_hours
		FROM shift
		WHERE shift_date BETWEEN $1 AND $2
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.ShiftRow
	for rows.Next() {
		var s db.ShiftRow
		var date time.Time
		if err := rows.Scan(&s.EmployeeID, &date, &s.Code, &s.Hours, &s.StartHour, &s.EndHour, &s.ContactHours); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		s.Date = date.Format(model.DateLayout)
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// getPreferences loads the one-off preferences inside the horizon and every
// recurring preference anchored before its end
func (d *DB) getPreferences(ctx context.Context, from, to time.Time) ([]db.PreferenceRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, pref_date, type, weight, preferred, avoided, recurrence
		FROM preference
		WHERE (recurrence = '' AND pref_date BETWEEN $1 AND $2)
		   OR (recurrence <> '' AND pref_date <= $2)
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences: %w", err)
	}
	defer rows.Close()

	var preferences []db.PreferenceRow
	for rows.Next() {
		var p db.PreferenceRow
		var date time.Time
		if err := rows.Scan(&p.EmployeeID, &date, &p.Type, &p.Weight, &p.Preferred, &p.Avoided, &p.Recurrence); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		p.Date = date.Format(model.DateLayout)
		preferences = append(preferences, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preferences: %w", err)
	}

	return preferences, nil
}

func (d *DB) getContactHours(ctx context.Context, month string) ([]db.ContactHoursRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT employee_id, month, hours
		FROM contact_hours
		WHERE month = $1
	`, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query contact hours: %w", err)
	}
	defer rows.Close()

	var contactHours []db.ContactHoursRow
	for rows.Next() {
		var c db.ContactHoursRow
		if err := rows.Scan(&c.EmployeeID, &c.Month, &c.Hours); err != nil {
			return nil, fmt.Errorf("failed to scan contact hours: %w", err)
		}
		contactHours = append(contactHours, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact hours: %w", err)
	}

	return contactHours, nil
}
