package scoring

import (
	"time"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/rules"
	"github.com/jakechorley/shift-cover/pkg/core/shift"
)

// Result is the score of one proposal with the reasons for any deviation from the base score
type Result struct {
	Score   int
	Reasons []string
}

// Illegal reports whether the proposal was rejected outright
func (r Result) Illegal() bool {
	return r.Score == IllegalScore
}

// Scorer applies a policy's criteria to proposals.
// A Scorer holds no mutable state and is safe for concurrent use.
type Scorer struct {
	policy   Policy
	codes    model.CodeTable
	criteria []Criterion
}

// NewScorer creates a scorer for the policy
func NewScorer(policy Policy, codes model.CodeTable) *Scorer {
	return NewScorerWithCriteria(policy, codes, policy.Criteria())
}

// NewScorerWithCriteria creates a scorer with a custom criteria list.
// The policy still provides the base and maximum scores.
func NewScorerWithCriteria(policy Policy, codes model.CodeTable, criteria []Criterion) *Scorer {
	return &Scorer{
		policy:   policy,
		codes:    codes,
		criteria: criteria,
	}
}

// Policy returns the scorer's policy
func (s *Scorer) Policy() Policy {
	return s.policy
}

// Codes returns the scorer's code table
func (s *Scorer) Codes() model.CodeTable {
	return s.codes
}

// Score evaluates the employee taking the proposed code on date.
// The result is either IllegalScore or a score within [0, MaxScore].
func (s *Scorer) Score(emp *model.Employee, date time.Time, code string, balance Balance) Result {
	ev := &Evaluation{
		Employee: emp,
		Date:     rules.Day(date),
		Code:     code,
		Status:   s.codes.Classify(code),
		Balance:  balance,
	}
	ev.Range, ev.HasRange = shift.Parse(code)

	score := s.policy.BaseScore
	reasons := []string{}

	for _, criterion := range s.criteria {
		effect := criterion.Evaluate(ev)
		reasons = append(reasons, effect.Reasons...)

		if effect.Blocked {
			return Result{Score: IllegalScore, Reasons: reasons}
		}
		score += effect.Delta
	}

	return Result{Score: clamp(score, 0, s.policy.MaxScore), Reasons: reasons}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
