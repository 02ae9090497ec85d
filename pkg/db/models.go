package db

// EmployeeRow represents a stored employee
type EmployeeRow struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Roles []string `yaml:"roles,omitempty"`
}

// ShiftRow represents a stored shift record
type ShiftRow struct {
	EmployeeID   string   `yaml:"employeeId"`
	Date         string   `yaml:"date"`
	Code         string   `yaml:"code"`
	Hours        *float64 `yaml:"hours,omitempty"`
	StartHour    *int     `yaml:"startHour,omitempty"`
	EndHour      *int     `yaml:"endHour,omitempty"`
	ContactHours float64  `yaml:"contactHours,omitempty"`
}

// PreferenceRow represents a stored preference entry
type PreferenceRow struct {
	EmployeeID string   `yaml:"employeeId"`
	Date       string   `yaml:"date"`
	Type       string   `yaml:"type"`
	Weight     int      `yaml:"weight"`
	Preferred  []string `yaml:"preferred,omitempty"`
	Avoided    []string `yaml:"avoided,omitempty"`
	Recurrence string   `yaml:"recurrence,omitempty"`
}

// ContactHoursRow represents manually recorded contact hours for a month
type ContactHoursRow struct {
	EmployeeID string  `yaml:"employeeId"`
	Month      string  `yaml:"month"`
	Hours      float64 `yaml:"hours"`
}

// Rows is everything a supplier read for one schedule
type Rows struct {
	Employees    []EmployeeRow
	Shifts       []ShiftRow
	Preferences  []PreferenceRow
	ContactHours []ContactHoursRow
}
