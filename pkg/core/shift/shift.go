package shift

import (
	"regexp"
	"strconv"
)

// NightShift is the organisation's standard overnight shift code
const NightShift = "20-8"

var rangePattern = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})$`)

// Range is the start and end hour of a time-range shift code.
// A range with Start > End crosses midnight.
type Range struct {
	Start int
	End   int
}

// Parse extracts the hour bounds from a time-range code such as "7-19" or "20/8".
// Returns false for codes shorter than 3 characters or that are not a time range
// (day-off and leave codes, malformed input).
func Parse(code string) (Range, bool) {
	if len(code) < 3 {
		return Range{}, false
	}

	matches := rangePattern.FindStringSubmatch(code)
	if matches == nil {
		return Range{}, false
	}

	start, err := strconv.Atoi(matches[1])
	if err != nil {
		return Range{}, false
	}
	end, err := strconv.Atoi(matches[2])
	if err != nil {
		return Range{}, false
	}

	return Range{Start: start, End: end}, true
}

// IsNightShift reports whether code is exactly the canonical night shift
func IsNightShift(code string) bool {
	return code == NightShift
}

// WrapsMidnight reports whether the shift ends on the following day
func (r Range) WrapsMidnight() bool {
	return r.Start > r.End
}

// Duration returns the length of the shift in hours, wrapping past midnight
func (r Range) Duration() int {
	d := r.End - r.Start
	if d < 0 {
		d += 24
	}
	return d
}
