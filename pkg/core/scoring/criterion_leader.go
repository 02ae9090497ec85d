package scoring

import (
	"fmt"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/rules"
)

// LeaderCriterion restricts leaders to weekday shifts inside the leader window.
//
// For employees with the leader role the proposal is blocked when:
//   - it is a working shift on a Saturday or Sunday
//   - it starts before the window opens
//   - it crosses midnight
//   - it ends after the window closes
type LeaderCriterion struct {
	earliestStart int
	latestEnd     int
}

// NewLeaderCriterion creates a new LeaderCriterion
func NewLeaderCriterion(earliestStart, latestEnd int) *LeaderCriterion {
	return &LeaderCriterion{
		earliestStart: earliestStart,
		latestEnd:     latestEnd,
	}
}

func (c *LeaderCriterion) Name() string {
	return "Leader"
}

func (c *LeaderCriterion) Evaluate(ev *Evaluation) Effect {
	if !ev.Employee.HasRole(model.RoleLeader) {
		return noEffect()
	}

	if rules.IsWeekend(ev.Date) && !ev.ProposesRest() {
		return block("leaders do not work weekends")
	}
	if !ev.HasRange {
		return noEffect()
	}

	switch {
	case ev.Range.Start < c.earliestStart:
		return block(fmt.Sprintf("leaders cannot start before %d:00", c.earliestStart))
	case ev.Range.WrapsMidnight():
		return block("leaders cannot work night shifts")
	case ev.Range.End > c.latestEnd:
		return block(fmt.Sprintf("leaders cannot finish after %d:00", c.latestEnd))
	}
	return noEffect()
}
