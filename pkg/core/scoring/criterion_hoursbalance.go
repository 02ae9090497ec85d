package scoring

import (
	"fmt"
	"math"
)

// HoursBalanceCriterion favours employees below the pool's average monthly hours.
//
// The adjustment is -round(hours - average), clamped to the maximum adjustment either way. It only
// applies to working proposals and is explained when its magnitude exceeds the
// note threshold.
type HoursBalanceCriterion struct {
	maxAdjustment int
	noteThreshold int
}

// NewHoursBalanceCriterion creates a new HoursBalanceCriterion
func NewHoursBalanceCriterion(maxAdjustment, noteThreshold int) *HoursBalanceCriterion {
	return &HoursBalanceCriterion{
		maxAdjustment: maxAdjustment,
		noteThreshold: noteThreshold,
	}
}

func (c *HoursBalanceCriterion) Name() string {
	return "HoursBalance"
}

func (c *HoursBalanceCriterion) Evaluate(ev *Evaluation) Effect {
	if ev.ProposesRest() || ev.Balance == nil {
		return noEffect()
	}

	deviation := ev.Balance.HoursFor(ev.Employee.ID) - ev.Balance.Average()
	adjustment := clamp(-int(math.Round(deviation)), -c.maxAdjustment, c.maxAdjustment)

	if adjustment == 0 {
		return noEffect()
	}
	if abs(adjustment) <= c.noteThreshold {
		return Effect{Delta: adjustment}
	}
	if adjustment > 0 {
		return adjust(adjustment, fmt.Sprintf("%.0fh below the monthly average", -deviation))
	}
	return adjust(adjustment, fmt.Sprintf("%.0fh above the monthly average", deviation))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
