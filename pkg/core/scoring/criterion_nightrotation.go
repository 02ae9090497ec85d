package scoring

// NightRotationCriterion protects recovery after night shifts.
//
//   - Two night shifts on the two previous days: a working proposal costs the
//     double-night penalty, a day off is noted as the expected rest
//   - A night shift only on the previous day: a working proposal costs the
//     single-night penalty
type NightRotationCriterion struct {
	nightCode     string
	doublePenalty int
	singlePenalty int
}

// NewNightRotationCriterion creates a new NightRotationCriterion
func NewNightRotationCriterion(nightCode string, doublePenalty, singlePenalty int) *NightRotationCriterion {
	return &NightRotationCriterion{
		nightCode:     nightCode,
		doublePenalty: doublePenalty,
		singlePenalty: singlePenalty,
	}
}

func (c *NightRotationCriterion) Name() string {
	return "NightRotation"
}

func (c *NightRotationCriterion) Evaluate(ev *Evaluation) Effect {
	lastNight := c.workedNight(ev, 1)
	nightBefore := c.workedNight(ev, 2)

	if lastNight && nightBefore {
		if ev.ProposesRest() {
			return note("rest day after two night shifts")
		}
		return adjust(-c.doublePenalty, "should rest after two night shifts")
	}

	if lastNight && !ev.ProposesRest() {
		return adjust(-c.singlePenalty, "worked a night shift yesterday")
	}

	return noEffect()
}

// workedNight reports whether the employee worked the night shift daysBack days before the target
func (c *NightRotationCriterion) workedNight(ev *Evaluation, daysBack int) bool {
	rec, ok := ev.Employee.ShiftOn(ev.Date.AddDate(0, 0, -daysBack))
	return ok && rec.Code == c.nightCode
}
