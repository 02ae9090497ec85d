package scoring

import (
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/shift"
)

// Balance provides the monthly hours context used for hours balancing
type Balance interface {
	// HoursFor returns the employee's accumulated hours for the month
	HoursFor(employeeID string) float64

	// Average returns the mean accumulated hours across the schedule
	Average() float64
}

// Evaluation is the proposal being scored
type Evaluation struct {
	Employee *model.Employee

	// Date is the target date at UTC midnight
	Date time.Time

	// Code is the proposed shift code and Status its classification
	Code   string
	Status model.Status

	// Range is the proposed time range (HasRange false for non-range codes)
	Range    shift.Range
	HasRange bool

	// Balance may be nil, in which case hours balancing is skipped
	Balance Balance
}

// ProposesRest reports whether the proposal is a day off (or leave)
func (ev *Evaluation) ProposesRest() bool {
	return ev.Status.IsRest()
}

// DateKey returns the target date as an ISO string
func (ev *Evaluation) DateKey() string {
	return ev.Date.Format(model.DateLayout)
}

// Effect is a criterion's contribution to the score
type Effect struct {
	// Blocked rejects the proposal outright
	Blocked bool

	// Delta is added to the score
	Delta int

	// Reasons explain the effect (may be set with a zero delta as a note)
	Reasons []string
}

func noEffect() Effect {
	return Effect{}
}

func block(reason string) Effect {
	return Effect{Blocked: true, Reasons: []string{reason}}
}

func adjust(delta int, reason string) Effect {
	return Effect{Delta: delta, Reasons: []string{reason}}
}

func note(reason string) Effect {
	return Effect{Reasons: []string{reason}}
}

// Criterion is one step of the scoring policy.
// Criteria are evaluated in order; the first blocking effect ends the evaluation.
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// Evaluate returns the criterion's effect on the proposal
	Evaluate(ev *Evaluation) Effect
}
