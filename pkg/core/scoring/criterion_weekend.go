package scoring

import (
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/rules"
)

// WeekendFairnessCriterion spreads weekend work by looking at the previous weekend.
//
// Only applies to weekend targets. A day counts as worked unless it was a day off
// or blank, so leave counts. If the employee worked the Saturday and/or
// Sunday one week earlier, a day off is noted and a working proposal costs the
// both-days or one-day penalty.
type WeekendFairnessCriterion struct {
	bothPenalty int
	onePenalty  int
}

// NewWeekendFairnessCriterion creates a new WeekendFairnessCriterion
func NewWeekendFairnessCriterion(bothPenalty, onePenalty int) *WeekendFairnessCriterion {
	return &WeekendFairnessCriterion{
		bothPenalty: bothPenalty,
		onePenalty:  onePenalty,
	}
}

func (c *WeekendFairnessCriterion) Name() string {
	return "WeekendFairness"
}

func (c *WeekendFairnessCriterion) Evaluate(ev *Evaluation) Effect {
	if !rules.IsWeekend(ev.Date) {
		return noEffect()
	}

	saturday, sunday := previousWeekend(ev.Date)
	worked := 0
	for _, day := range []time.Time{saturday, sunday} {
		if rec, ok := ev.Employee.ShiftOn(day); ok && rec.Status.IsOccupied() {
			worked++
		}
	}

	if worked == 0 {
		return noEffect()
	}
	if ev.ProposesRest() {
		return note("rest weekend after working last weekend")
	}
	if worked == 2 {
		return adjust(-c.bothPenalty, "worked both days last weekend")
	}
	return adjust(-c.onePenalty, "worked one day last weekend")
}

// previousWeekend returns the Saturday and Sunday one week before the weekend containing date
func previousWeekend(date time.Time) (time.Time, time.Time) {
	saturday := date.AddDate(0, 0, -7)
	if date.Weekday() == time.Sunday {
		saturday = date.AddDate(0, 0, -8)
	}
	return saturday, saturday.AddDate(0, 0, 1)
}
