package scoring

import (
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/rules"
)

type restCheck func(emp *model.Employee, date time.Time, code string, limits rules.Limits) rules.Result

// DailyRestCriterion applies one of the daily rest checks.
// A gap below the daily minimum costs the rest penalty and never blocks.
type DailyRestCriterion struct {
	name    string
	check   restCheck
	limits  rules.Limits
	penalty int
}

// NewRestBeforeCriterion checks the rest after the previous day's shift
func NewRestBeforeCriterion(limits rules.Limits, penalty int) *DailyRestCriterion {
	return &DailyRestCriterion{
		name:    "RestBefore",
		check:   rules.CheckRestBefore,
		limits:  limits,
		penalty: penalty,
	}
}

// NewRestAfterCriterion checks the rest before the next day's shift
func NewRestAfterCriterion(limits rules.Limits, penalty int) *DailyRestCriterion {
	return &DailyRestCriterion{
		name:    "RestAfter",
		check:   rules.CheckRestAfter,
		limits:  limits,
		penalty: penalty,
	}
}

func (c *DailyRestCriterion) Name() string {
	return c.name
}

func (c *DailyRestCriterion) Evaluate(ev *Evaluation) Effect {
	res := c.check(ev.Employee, ev.Date, ev.Code, c.limits)
	if res.Valid {
		return noEffect()
	}
	return adjust(-c.penalty, "insufficient rest: "+res.Reason)
}
