package scoring

import "fmt"

// ConsecutiveDaysCriterion blocks a working proposal that would extend a run of
// working days past the legal maximum. The run is counted backwards from the
// previous day and stops at the first day off or blank or missing record.
// Leave days extend the run.
type ConsecutiveDaysCriterion struct {
	maxDays  int
	lookback int
}

// NewConsecutiveDaysCriterion creates a new ConsecutiveDaysCriterion
func NewConsecutiveDaysCriterion(maxDays, lookback int) *ConsecutiveDaysCriterion {
	return &ConsecutiveDaysCriterion{
		maxDays:  maxDays,
		lookback: lookback,
	}
}

func (c *ConsecutiveDaysCriterion) Name() string {
	return "ConsecutiveDays"
}

func (c *ConsecutiveDaysCriterion) Evaluate(ev *Evaluation) Effect {
	if ev.ProposesRest() {
		return noEffect()
	}

	streak := 0
	for i := 1; i <= c.lookback; i++ {
		rec, ok := ev.Employee.ShiftOn(ev.Date.AddDate(0, 0, -i))
		if !ok || !rec.Status.IsOccupied() {
			break
		}
		streak++
	}

	if streak >= c.maxDays {
		return block(fmt.Sprintf("already worked %d consecutive days (maximum %d)", streak, c.maxDays))
	}
	return noEffect()
}
