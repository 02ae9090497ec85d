package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
)

// EmployeeInput is a raw employee as read from a schedule supplier
type EmployeeInput struct {
	ID    string   `validate:"required"`
	Name  string   `validate:"required"`
	Roles []string `validate:"dive,required"`
}

// ShiftInput is a raw shift record as read from a schedule supplier
type ShiftInput struct {
	EmployeeID   string   `validate:"required"`
	Date         string   `validate:"required,datetime=2006-01-02"`
	Code         string
	Hours        *float64 `validate:"omitempty,min=0"`
	StartHour    *int     `validate:"omitempty,min=0,max=23"`
	EndHour      *int     `validate:"omitempty,min=0,max=23"`
	ContactHours float64  `validate:"min=0"`
}

// PreferenceInput is a raw preference entry.
// Recurrence is an optional RRULE (e.g. "FREQ=WEEKLY;BYDAY=SU") anchored at Date.
type PreferenceInput struct {
	EmployeeID string   `validate:"required"`
	Date       string   `validate:"required,datetime=2006-01-02"`
	Type       string   `validate:"required"`
	Weight     int      `validate:"min=1"`
	Preferred  []string `validate:"dive,required"`
	Avoided    []string `validate:"dive,required"`
	Recurrence string
}

// ContactHoursInput is a manually recorded monthly contact-hours figure
type ContactHoursInput struct {
	EmployeeID string  `validate:"required"`
	Month      string  `validate:"required,datetime=2006-01"`
	Hours      float64 `validate:"min=0"`
}

var validate = validator.New()

// Builder assembles a Schedule from raw supplier rows.
// It is the validation boundary: the scoring engine assumes its invariants.
type Builder struct {
	month     time.Time
	codes     CodeTable
	employees []*Employee
	byID      map[string]*Employee
}

// NewBuilder starts a schedule for the given month ("2006-01")
func NewBuilder(month string, codes CodeTable) (*Builder, error) {
	start, err := time.Parse(MonthLayout, month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return &Builder{
		month: start,
		codes: codes,
		byID:  make(map[string]*Employee),
	}, nil
}

// AddEmployee registers an employee. IDs must be unique.
func (b *Builder) AddEmployee(in EmployeeInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid employee %q: %w", in.ID, err)
	}
	if _, exists := b.byID[in.ID]; exists {
		return fmt.Errorf("duplicate employee %q", in.ID)
	}

	roles := make([]Role, 0, len(in.Roles))
	for _, tag := range in.Roles {
		role, err := ParseRole(tag)
		if err != nil {
			return fmt.Errorf("employee %q: %w", in.ID, err)
		}
		roles = append(roles, role)
	}

	emp := &Employee{
		ID:                  in.ID,
		Name:                in.Name,
		Roles:               roles,
		Shifts:              make(map[string]ShiftRecord),
		MonthlyContactHours: make(map[string]float64),
	}
	b.employees = append(b.employees, emp)
	b.byID[in.ID] = emp
	return nil
}

// AddShift records a shift for a registered employee.
// A second record for the same employee and date is rejected.
func (b *Builder) AddShift(in ShiftInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid shift for %q on %s: %w", in.EmployeeID, in.Date, err)
	}
	emp, err := b.employee(in.EmployeeID)
	if err != nil {
		return err
	}
	if (in.StartHour == nil) != (in.EndHour == nil) {
		return fmt.Errorf("shift for %q on %s: start and end hours must be set together", in.EmployeeID, in.Date)
	}
	if _, exists := emp.Shifts[in.Date]; exists {
		return fmt.Errorf("employee %q already has a shift on %s", in.EmployeeID, in.Date)
	}

	code := strings.TrimSpace(in.Code)
	rec := ShiftRecord{
		Date:         in.Date,
		Code:         code,
		Status:       b.codes.Classify(code),
		StartHour:    in.StartHour,
		EndHour:      in.EndHour,
		ContactHours: in.ContactHours,
	}

	if in.Hours != nil {
		rec.Hours = *in.Hours
	} else if rec.Status == StatusWorking {
		if r, ok := rec.Range(); ok {
			rec.Hours = float64(r.Duration())
		}
	}

	emp.Shifts[in.Date] = rec
	return nil
}

// AddPreference records a preference entry, expanding recurring entries
// across the schedule month
func (b *Builder) AddPreference(in PreferenceInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid preference for %q on %s: %w", in.EmployeeID, in.Date, err)
	}
	emp, err := b.employee(in.EmployeeID)
	if err != nil {
		return err
	}

	pref := Preference{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		Type:       strings.ToUpper(strings.TrimSpace(in.Type)),
		Weight:     in.Weight,
		Preferred:  in.Preferred,
		Avoided:    in.Avoided,
	}

	if in.Recurrence == "" {
		emp.Preferences = append(emp.Preferences, pref)
		return nil
	}

	dates, err := b.expandRecurrence(in.Recurrence, in.Date)
	if err != nil {
		return fmt.Errorf("preference for %q: %w", in.EmployeeID, err)
	}
	for _, date := range dates {
		occurrence := pref
		occurrence.Date = date.Format(DateLayout)
		emp.Preferences = append(emp.Preferences, occurrence)
	}
	return nil
}

// AddContactHours records manually entered contact hours for a month.
// Repeated entries for the same month accumulate.
func (b *Builder) AddContactHours(in ContactHoursInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid contact hours for %q: %w", in.EmployeeID, err)
	}
	emp, err := b.employee(in.EmployeeID)
	if err != nil {
		return err
	}
	emp.MonthlyContactHours[in.Month] += in.Hours
	return nil
}

// Build returns the assembled schedule
func (b *Builder) Build() *Schedule {
	return &Schedule{
		Month:     b.month.Format(MonthLayout),
		Employees: b.employees,
	}
}

func (b *Builder) employee(id string) (*Employee, error) {
	emp, ok := b.byID[id]
	if !ok {
		return nil, fmt.Errorf("unknown employee %q", id)
	}
	return emp, nil
}

// expandRecurrence returns the occurrences of rule, anchored at the given date,
// that fall inside the schedule month
func (b *Builder) expandRecurrence(rule, anchor string) ([]time.Time, error) {
	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence %q: %w", rule, err)
	}
	start, err := time.Parse(DateLayout, anchor)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence anchor %q: %w", anchor, err)
	}
	opt.Dtstart = start

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence %q: %w", rule, err)
	}

	monthEnd := b.month.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return r.Between(b.month, monthEnd, true), nil
}
