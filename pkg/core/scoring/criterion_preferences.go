package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jakechorley/shift-cover/pkg/core/model"
)

// PreferenceCriterion applies the employee's weighted preferences for the target date.
//
// Only working proposals are affected:
//   - proposed code is preferred: +round(weight/2)
//   - proposed code is avoided: -weight
//   - entry names no codes (prefers a day off): -weight
type PreferenceCriterion struct{}

// NewPreferenceCriterion creates a new PreferenceCriterion
func NewPreferenceCriterion() *PreferenceCriterion {
	return &PreferenceCriterion{}
}

func (c *PreferenceCriterion) Name() string {
	return "Preferences"
}

func (c *PreferenceCriterion) Evaluate(ev *Evaluation) Effect {
	if ev.ProposesRest() {
		return noEffect()
	}

	effect := noEffect()
	dateKey := ev.DateKey()

	for _, pref := range ev.Employee.Preferences {
		if pref.Type != model.PreferenceTypePreference || pref.Date != dateKey {
			continue
		}

		if len(pref.Preferred) == 0 && len(pref.Avoided) == 0 {
			effect.Delta -= pref.Weight
			effect.Reasons = append(effect.Reasons, fmt.Sprintf("prefers a day off (-%d)", pref.Weight))
			continue
		}

		// A code listed in both sets gets both adjustments
		if containsCode(pref.Preferred, ev.Code) {
			bonus := int(math.Round(float64(pref.Weight) / 2))
			effect.Delta += bonus
			effect.Reasons = append(effect.Reasons, fmt.Sprintf("prefers shift %s (+%d)", ev.Code, bonus))
		}
		if containsCode(pref.Avoided, ev.Code) {
			effect.Delta -= pref.Weight
			effect.Reasons = append(effect.Reasons, fmt.Sprintf("avoids shift %s (-%d)", ev.Code, pref.Weight))
		}
	}

	return effect
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if strings.EqualFold(strings.TrimSpace(c), code) {
			return true
		}
	}
	return false
}
