package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/scoring"
)

type shiftEntry struct {
	date  string
	code  string
	hours *float64
}

func float(v float64) *float64 {
	return &v
}

func buildSchedule(t *testing.T, employees map[string][]shiftEntry, order []string) *model.Schedule {
	t.Helper()
	b, err := model.NewBuilder("2024-03", model.DefaultCodeTable())
	require.NoError(t, err)

	for _, id := range order {
		require.NoError(t, b.AddEmployee(model.EmployeeInput{ID: id, Name: "Name " + id}))
		for _, s := range employees[id] {
			require.NoError(t, b.AddShift(model.ShiftInput{EmployeeID: id, Date: s.date, Code: s.code, Hours: s.hours}))
		}
	}
	return b.Build()
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestMonthlyHours(t *testing.T) {
	b, err := model.NewBuilder("2024-03", model.DefaultCodeTable())
	require.NoError(t, err)
	require.NoError(t, b.AddEmployee(model.EmployeeInput{ID: "a", Name: "A"}))
	require.NoError(t, b.AddEmployee(model.EmployeeInput{ID: "b", Name: "B"}))

	require.NoError(t, b.AddShift(model.ShiftInput{EmployeeID: "a", Date: "2024-03-01", Code: "7-19", ContactHours: 2}))
	require.NoError(t, b.AddShift(model.ShiftInput{EmployeeID: "a", Date: "2024-03-02", Code: "20-8"}))
	require.NoError(t, b.AddShift(model.ShiftInput{EmployeeID: "a", Date: "2024-02-29", Code: "7-19"}))
	require.NoError(t, b.AddShift(model.ShiftInput{EmployeeID: "a", Date: "2024-03-03", Code: "F"}))
	require.NoError(t, b.AddContactHours(model.ContactHoursInput{EmployeeID: "a", Month: "2024-03", Hours: 6}))
	require.NoError(t, b.AddContactHours(model.ContactHoursInput{EmployeeID: "a", Month: "2024-02", Hours: 100}))
	require.NoError(t, b.AddShift(model.ShiftInput{EmployeeID: "b", Date: "2024-03-05", Code: "8-14"}))
	schedule := b.Build()

	t.Run("shift hours only", func(t *testing.T) {
		idx := MonthlyHours(schedule, "2024-03", false)
		assert.Equal(t, 24.0, idx.HoursFor("a"))
		assert.Equal(t, 6.0, idx.HoursFor("b"))
		assert.Equal(t, 15.0, idx.Average())
	})

	t.Run("with contact hours", func(t *testing.T) {
		idx := MonthlyHours(schedule, "2024-03", true)
		assert.Equal(t, 32.0, idx.HoursFor("a"))
		assert.Equal(t, 6.0, idx.HoursFor("b"))
		assert.Equal(t, 19.0, idx.Average())
	})

	t.Run("unknown employee", func(t *testing.T) {
		assert.Equal(t, 0.0, MonthlyHours(schedule, "2024-03", false).HoursFor("nobody"))
	})

	t.Run("empty schedule", func(t *testing.T) {
		assert.Equal(t, 0.0, MonthlyHours(&model.Schedule{}, "2024-03", false).Average())
	})
}

func TestRank_Eligibility(t *testing.T) {
	schedule := buildSchedule(t, map[string][]shiftEntry{
		"out":     {{date: "2024-03-06", code: "7-19"}},
		"busy":    {{date: "2024-03-06", code: "8-14"}},
		"unknown": {{date: "2024-03-06", code: "XYZ"}},
		"sick":    {{date: "2024-03-06", code: "AT"}},
		"holiday": {{date: "2024-03-06", code: "FE"}},
		"off":     {{date: "2024-03-06", code: "F"}},
		"free":    nil,
	}, []string{"out", "busy", "unknown", "sick", "holiday", "off", "free"})

	scorer := scoring.NewScorer(scoring.DefaultPolicy(), model.DefaultCodeTable())
	candidates := Rank(Request{Date: date(t, "2024-03-06"), ShiftType: "7-19", EmployeeOutID: "out"}, schedule, scorer)

	var ids []string
	for _, c := range candidates {
		ids = append(ids, c.EmployeeID)
	}
	assert.Equal(t, []string{"off", "free"}, ids)
}

func TestRank_OrderAndCanWork(t *testing.T) {
	schedule := buildSchedule(t, map[string][]shiftEntry{
		"eighty": nil,
		"illegal": {
			{date: "2024-03-11", code: "8-12"},
			{date: "2024-03-12", code: "8-12"},
			{date: "2024-03-13", code: "8-12"},
			{date: "2024-03-14", code: "8-12"},
			{date: "2024-03-15", code: "8-12"},
		},
		"ninetyfive": nil,
		"forty":      {{date: "2024-03-15", code: "7-19"}},
	}, []string{"eighty", "illegal", "ninetyfive", "forty"})

	hours := &HoursIndex{
		Month: "2024-03",
		hours: map[string]float64{
			"eighty":     170,
			"illegal":    0,
			"ninetyfive": 155,
			"forty":      150,
		},
		average: 150,
	}

	scorer := scoring.NewScorer(scoring.DefaultPolicy(), model.DefaultCodeTable())
	req := Request{Date: date(t, "2024-03-16"), ShiftType: "5-13", EmployeeOutID: "nobody"}
	candidates := RankWithHours(req, schedule, scorer, hours)

	require.Len(t, candidates, 4)

	var scores []int
	for _, c := range candidates {
		scores = append(scores, c.Score)
	}
	assert.Equal(t, []int{95, 80, 40, scoring.IllegalScore}, scores)

	assert.Equal(t, "ninetyfive", candidates[0].EmployeeID)
	assert.Equal(t, "Name ninetyfive", candidates[0].Name)
	assert.Equal(t, 155.0, candidates[0].Details.MonthlyHours)
	for _, c := range candidates[:3] {
		assert.True(t, c.Details.CanWork)
	}
	assert.Equal(t, "illegal", candidates[3].EmployeeID)
	assert.False(t, candidates[3].Details.CanWork)
}

func TestRank_TiesKeepScheduleOrder(t *testing.T) {
	order := []string{"c", "a", "d", "b"}
	schedule := buildSchedule(t, map[string][]shiftEntry{}, order)

	scorer := scoring.NewScorer(scoring.DefaultPolicy(), model.DefaultCodeTable())
	candidates := Rank(Request{Date: date(t, "2024-03-06"), ShiftType: "7-19"}, schedule, scorer)

	var ids []string
	for _, c := range candidates {
		ids = append(ids, c.EmployeeID)
		assert.Equal(t, 100, c.Score)
	}
	assert.Equal(t, order, ids)
}

func TestRank_Idempotent(t *testing.T) {
	schedule := buildSchedule(t, map[string][]shiftEntry{
		"a": {{date: "2024-03-04", code: "20-8"}, {date: "2024-03-05", code: "20-8"}},
		"b": {{date: "2024-03-05", code: "7-19", hours: float(10)}},
		"c": {{date: "2024-03-09", code: "7-19"}, {date: "2024-03-10", code: "7-19"}},
		"d": nil,
	}, []string{"a", "b", "c", "d"})

	scorer := scoring.NewScorer(scoring.DefaultPolicy(), model.DefaultCodeTable())
	req := Request{Date: date(t, "2024-03-06"), ShiftType: "20-8", IncludeContactHours: true}

	first := Rank(req, schedule, scorer)
	second := Rank(req, schedule, scorer)
	assert.Equal(t, first, second)
}
