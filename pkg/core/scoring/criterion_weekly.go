package scoring

import "github.com/jakechorley/shift-cover/pkg/core/rules"

// WeeklyRestCriterion blocks proposals that leave no legal weekly rest window.
// There is no partial credit.
type WeeklyRestCriterion struct {
	limits rules.Limits
}

// NewWeeklyRestCriterion creates a new WeeklyRestCriterion
func NewWeeklyRestCriterion(limits rules.Limits) *WeeklyRestCriterion {
	return &WeeklyRestCriterion{limits: limits}
}

func (c *WeeklyRestCriterion) Name() string {
	return "WeeklyRest"
}

func (c *WeeklyRestCriterion) Evaluate(ev *Evaluation) Effect {
	res := rules.CheckWeeklyRest(ev.Employee, ev.Date, ev.Code, c.limits)
	if res.Valid {
		return noEffect()
	}
	return block("no weekly rest: " + res.Reason)
}

// WeeklyHoursCriterion penalises proposals that take the week over the hours cap.
// Overtime never blocks a proposal.
type WeeklyHoursCriterion struct {
	limits  rules.Limits
	penalty int
}

// NewWeeklyHoursCriterion creates a new WeeklyHoursCriterion
func NewWeeklyHoursCriterion(limits rules.Limits, penalty int) *WeeklyHoursCriterion {
	return &WeeklyHoursCriterion{limits: limits, penalty: penalty}
}

func (c *WeeklyHoursCriterion) Name() string {
	return "WeeklyHours"
}

func (c *WeeklyHoursCriterion) Evaluate(ev *Evaluation) Effect {
	res := rules.CheckWeeklyHours(ev.Employee, ev.Date, ev.Code, c.limits)
	if res.Valid {
		return noEffect()
	}
	return adjust(-c.penalty, "overtime: "+res.Reason)
}
