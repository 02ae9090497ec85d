// Package schedulefile reads schedules from a YAML document.
//
// Example:
//
//	employees:
//	  - id: e1
//	    name: Ana
//	    roles: [LIDER]
//	    shifts:
//	      "2024-03-04": "8-16"
//	      "2024-03-05": F
//	      "2024-03-06": {code: "7-19", hours: 11, contactHours: 2}
//	    contactHours:
//	      "2024-03": 6
//	preferences:
//	  - employeeId: e1
//	    date: "2024-03-03"
//	    type: PREFERENCE
//	    weight: 10
//	    avoided: ["20-8"]
//	    recurrence: FREQ=WEEKLY;BYDAY=SU
package schedulefile

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/db"
)

// Document is the top-level structure of a schedule file
type Document struct {
	Employees   []Employee         `yaml:"employees"`
	Preferences []db.PreferenceRow `yaml:"preferences,omitempty"`
}

// Employee is one employee with their shifts keyed by ISO date
type Employee struct {
	ID           string                `yaml:"id"`
	Name         string                `yaml:"name"`
	Roles        []string              `yaml:"roles,omitempty"`
	Shifts       map[string]ShiftEntry `yaml:"shifts,omitempty"`
	ContactHours map[string]float64    `yaml:"contactHours,omitempty"`
}

// ShiftEntry is either a bare shift code or a mapping with the record's details
type ShiftEntry struct {
	Code         string   `yaml:"code"`
	Hours        *float64 `yaml:"hours,omitempty"`
	StartHour    *int     `yaml:"startHour,omitempty"`
	EndHour      *int     `yaml:"endHour,omitempty"`
	ContactHours float64  `yaml:"contactHours,omitempty"`
}

// UnmarshalYAML accepts a scalar code or a detailed mapping
func (e *ShiftEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*e = ShiftEntry{Code: value.Value}
		return nil
	}

	type plain ShiftEntry
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = ShiftEntry(p)
	return nil
}

// Store reads schedules from a YAML file
type Store struct {
	path  string
	codes model.CodeTable
}

// NewStore creates a store for the file at path
func NewStore(path string, codes model.CodeTable) *Store {
	return &Store{path: path, codes: codes}
}

// GetSchedule reads the file and assembles the schedule for month.
// The file is read on every call so edits are picked up.
func (s *Store) GetSchedule(ctx context.Context, month string) (*model.Schedule, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schedule file %s: %w", s.path, err)
	}

	schedule, err := db.Assemble(month, s.codes, doc.Rows())
	if err != nil {
		return nil, fmt.Errorf("failed to assemble schedule for %s: %w", month, err)
	}
	return schedule, nil
}

// Parse decodes a schedule document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Rows flattens the document into supplier rows.
// Shifts and contact hours are emitted in date order.
func (d *Document) Rows() db.Rows {
	rows := db.Rows{Preferences: d.Preferences}

	for _, e := range d.Employees {
		rows.Employees = append(rows.Employees, db.EmployeeRow{ID: e.ID, Name: e.Name, Roles: e.Roles})

		for _, date := range sortedKeys(e.Shifts) {
			entry := e.Shifts[date]
			rows.Shifts = append(rows.Shifts, db.ShiftRow{
				EmployeeID:   e.ID,
				Date:         date,
				Code:         entry.Code,
				Hours:        entry.Hours,
				StartHour:    entry.StartHour,
				EndHour:      entry.EndHour,
				ContactHours: entry.ContactHours,
			})
		}

		for _, month := range sortedKeys(e.ContactHours) {
			rows.ContactHours = append(rows.ContactHours, db.ContactHoursRow{
				EmployeeID: e.ID,
				Month:      month,
				Hours:      e.ContactHours[month],
			})
		}
	}

	return rows
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
