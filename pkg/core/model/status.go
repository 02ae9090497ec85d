package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jakechorley/shift-cover/pkg/core/shift"
)

// Status classifies a shift code
type Status int

const (
	// StatusUnknown is a non-empty code that is neither a time range nor a known code.
	// Treated as occupied, but no rule that needs hours applies to it.
	StatusUnknown Status = iota
	StatusEmpty
	StatusWorking
	StatusDayOff
	StatusSickLeave
	StatusUnpaidLeave
	StatusVacation
	StatusAbsence
)

var statusNames = map[Status]string{
	StatusUnknown:     "unknown",
	StatusEmpty:       "empty",
	StatusWorking:     "working",
	StatusDayOff:      "dayOff",
	StatusSickLeave:   "sickLeave",
	StatusUnpaidLeave: "unpaidLeave",
	StatusVacation:    "vacation",
	StatusAbsence:     "absence",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus returns the status for a configuration name such as "sickLeave".
// Only the non-working statuses that a code table may assign are accepted.
func ParseStatus(name string) (Status, error) {
	for _, s := range []Status{StatusDayOff, StatusSickLeave, StatusUnpaidLeave, StatusVacation, StatusAbsence} {
		if strings.EqualFold(statusNames[s], name) {
			return s, nil
		}
	}
	return StatusUnknown, fmt.Errorf("unknown status %q", name)
}

// IsWorking reports whether the employee is occupied by the record
func (s Status) IsWorking() bool {
	return s == StatusWorking || s == StatusUnknown
}

// IsLeave reports whether the status is a leave or absence.
// Leave is not working but the employee is not available either.
func (s Status) IsLeave() bool {
	switch s {
	case StatusSickLeave, StatusUnpaidLeave, StatusVacation, StatusAbsence:
		return true
	}
	return false
}

// IsOccupied reports whether the day is taken by anything other than a day off.
// Leave counts, a blank record does not. Used by the weekend and streak rules.
func (s Status) IsOccupied() bool {
	return s != StatusDayOff && s != StatusEmpty
}

// IsRest reports whether the record counts as rest for the labour rules
func (s Status) IsRest() bool {
	return !s.IsWorking()
}

// CodeTable maps non-range shift codes to their status
type CodeTable struct {
	codes map[string]Status
}

// DefaultCodeTable returns the standard code set
func DefaultCodeTable() CodeTable {
	return NewCodeTable(map[Status][]string{
		StatusDayOff:      {"F"},
		StatusSickLeave:   {"AT"},
		StatusUnpaidLeave: {"LNR"},
		StatusVacation:    {"FE"},
		StatusAbsence:     {"AF"},
	})
}

// NewCodeTable builds a code table from the codes assigned to each status.
// Codes are matched case-insensitively.
func NewCodeTable(entries map[Status][]string) CodeTable {
	t := CodeTable{codes: make(map[string]Status)}
	for status, codes := range entries {
		for _, code := range codes {
			t.codes[normalizeCode(code)] = status
		}
	}
	return t
}

// Classify returns the status of a raw shift code
func (t CodeTable) Classify(code string) Status {
	code = strings.TrimSpace(code)
	if code == "" {
		return StatusEmpty
	}
	if _, ok := shift.Parse(code); ok {
		return StatusWorking
	}
	if status, ok := t.codes[normalizeCode(code)]; ok {
		return status
	}
	return StatusUnknown
}

// Codes returns the codes assigned to a status, sorted
func (t CodeTable) Codes(status Status) []string {
	var codes []string
	for code, s := range t.codes {
		if s == status {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// LeaveCodes returns every code classified as leave or absence, sorted
func (t CodeTable) LeaveCodes() []string {
	var codes []string
	for code, s := range t.codes {
		if s.IsLeave() {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
