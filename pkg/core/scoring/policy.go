package scoring

import (
	"fmt"

	"github.com/jakechorley/shift-cover/pkg/core/rules"
	"github.com/jakechorley/shift-cover/pkg/core/shift"
)

// IllegalScore marks a proposal the employee cannot legally take.
// Achievable scores are always clamped to [0, MaxScore].
const IllegalScore = -1

// Policy holds every threshold and weight used when scoring a proposal.
// Swapping the policy changes the jurisdiction's rules without code changes.
type Policy struct {
	// BaseScore is the starting score before any adjustment
	BaseScore int

	// MaxScore is the upper clamp of the final score
	MaxScore int

	// Legal limits
	DailyRestHours  int
	WeeklyRestHours int
	MaxWeeklyHours  float64

	// RestPenalty is applied when the daily rest minimum is not met
	RestPenalty int

	// OvertimePenalty is applied when the week exceeds MaxWeeklyHours
	OvertimePenalty int

	// NightShiftCode is the canonical overnight shift
	NightShiftCode string

	// DoubleNightPenalty applies to a working proposal after two night shifts,
	// SingleNightPenalty after one
	DoubleNightPenalty int
	SingleNightPenalty int

	// Weekend fairness penalties for working both / one day of the previous weekend
	WeekendBothPenalty int
	WeekendOnePenalty  int

	// BalanceCap bounds the monthly hours adjustment in both directions.
	// Adjustments larger than BalanceNoteThreshold are explained.
	BalanceCap           int
	BalanceNoteThreshold int

	// MaxConsecutiveDays is the longest legal run of working days,
	// looked up at most ConsecutiveLookback days back
	MaxConsecutiveDays  int
	ConsecutiveLookback int

	// Leaders may only work weekday shifts inside this window
	LeaderEarliestStart int
	LeaderLatestEnd     int
}

// DefaultPolicy returns the standard policy
func DefaultPolicy() Policy {
	limits := rules.DefaultLimits()
	return Policy{
		BaseScore:            100,
		MaxScore:             100,
		DailyRestHours:       limits.DailyRestHours,
		WeeklyRestHours:      limits.WeeklyRestHours,
		MaxWeeklyHours:       limits.MaxWeeklyHours,
		RestPenalty:          60,
		OvertimePenalty:      60,
		NightShiftCode:       shift.NightShift,
		DoubleNightPenalty:   50,
		SingleNightPenalty:   25,
		WeekendBothPenalty:   50,
		WeekendOnePenalty:    25,
		BalanceCap:           20,
		BalanceNoteThreshold: 5,
		MaxConsecutiveDays:   5,
		ConsecutiveLookback:  6,
		LeaderEarliestStart:  8,
		LeaderLatestEnd:      20,
	}
}

// Limits returns the legal limits for the rule checks
func (p Policy) Limits() rules.Limits {
	return rules.Limits{
		DailyRestHours:  p.DailyRestHours,
		WeeklyRestHours: p.WeeklyRestHours,
		MaxWeeklyHours:  p.MaxWeeklyHours,
	}
}

// Validate checks the policy is internally consistent
func (p Policy) Validate() error {
	if p.MaxScore <= 0 {
		return fmt.Errorf("max score must be positive, got %d", p.MaxScore)
	}
	if p.BaseScore < 0 || p.BaseScore > p.MaxScore {
		return fmt.Errorf("base score %d must be within [0, %d]", p.BaseScore, p.MaxScore)
	}
	if p.DailyRestHours < 0 || p.DailyRestHours > 24 {
		return fmt.Errorf("daily rest hours must be within [0, 24], got %d", p.DailyRestHours)
	}
	if p.WeeklyRestHours < 0 || p.WeeklyRestHours > 168 {
		return fmt.Errorf("weekly rest hours must be within [0, 168], got %d", p.WeeklyRestHours)
	}
	if p.MaxWeeklyHours <= 0 {
		return fmt.Errorf("max weekly hours must be positive, got %g", p.MaxWeeklyHours)
	}
	if _, ok := shift.Parse(p.NightShiftCode); !ok {
		return fmt.Errorf("night shift code %q is not a time range", p.NightShiftCode)
	}
	if p.BalanceCap < 0 || p.BalanceNoteThreshold < 0 {
		return fmt.Errorf("balance cap and note threshold must not be negative")
	}
	if p.MaxConsecutiveDays < 1 {
		return fmt.Errorf("max consecutive days must be at least 1, got %d", p.MaxConsecutiveDays)
	}
	if p.ConsecutiveLookback < p.MaxConsecutiveDays {
		return fmt.Errorf("consecutive lookback (%d) must cover max consecutive days (%d)", p.ConsecutiveLookback, p.MaxConsecutiveDays)
	}
	if p.LeaderEarliestStart < 0 || p.LeaderLatestEnd > 24 || p.LeaderEarliestStart >= p.LeaderLatestEnd {
		return fmt.Errorf("leader window %d-%d is invalid", p.LeaderEarliestStart, p.LeaderLatestEnd)
	}
	return nil
}

// Criteria returns the policy's criteria in evaluation order
func (p Policy) Criteria() []Criterion {
	limits := p.Limits()
	return []Criterion{
		NewRestBeforeCriterion(limits, p.RestPenalty),
		NewRestAfterCriterion(limits, p.RestPenalty),
		NewWeeklyRestCriterion(limits),
		NewWeeklyHoursCriterion(limits, p.OvertimePenalty),
		NewLeaderCriterion(p.LeaderEarliestStart, p.LeaderLatestEnd),
		NewNightRotationCriterion(p.NightShiftCode, p.DoubleNightPenalty, p.SingleNightPenalty),
		NewWeekendFairnessCriterion(p.WeekendBothPenalty, p.WeekendOnePenalty),
		NewHoursBalanceCriterion(p.BalanceCap, p.BalanceNoteThreshold),
		NewConsecutiveDaysCriterion(p.MaxConsecutiveDays, p.ConsecutiveLookback),
		NewPreferenceCriterion(),
	}
}
