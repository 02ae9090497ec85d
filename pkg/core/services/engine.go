package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cover/internal/config"
	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/scoring"
)

// PolicyOverride changes the policy on the dates it applies to
type PolicyOverride struct {
	AppliesTo func(date time.Time) bool
	Policy    config.PolicyConfig
}

// Engine holds the scoring configuration shared by the services
type Engine struct {
	Codes      model.CodeTable
	BasePolicy scoring.Policy
	Overrides  []PolicyOverride
}

// NewEngine builds the engine from the application configuration
func NewEngine(cfg *config.Config, logger *zap.Logger) (*Engine, error) {
	codes, err := cfg.CodeTable()
	if err != nil {
		return nil, err
	}

	base, err := cfg.BasePolicy()
	if err != nil {
		return nil, err
	}

	overrides, err := convertPolicyOverrides(cfg.PolicyOverrides, logger)
	if err != nil {
		return nil, err
	}

	return &Engine{
		Codes:      codes,
		BasePolicy: base,
		Overrides:  overrides,
	}, nil
}

// PolicyFor returns the base policy with every override that applies to date.
// Overrides are applied in configuration order.
func (e *Engine) PolicyFor(date time.Time) scoring.Policy {
	policy := e.BasePolicy
	for _, override := range e.Overrides {
		if override.AppliesTo(date) {
			policy = override.Policy.Apply(policy)
		}
	}
	return policy
}

// ScorerFor returns a scorer using the policy for date
func (e *Engine) ScorerFor(date time.Time) *scoring.Scorer {
	return scoring.NewScorer(e.PolicyFor(date), e.Codes)
}

// convertPolicyOverrides converts config.PolicyOverride RRules to date-matching functions.
// Rules without a DTSTART are anchored at January 1st of the date being checked.
func convertPolicyOverrides(configOverrides []config.PolicyOverride, logger *zap.Logger) ([]PolicyOverride, error) {
	result := make([]PolicyOverride, 0, len(configOverrides))

	for i, override := range configOverrides {
		opt, err := rrule.StrToROption(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}

		// Copy so each closure owns its option
		ruleOption := *opt
		appliesTo := func(date time.Time) bool {
			day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

			o := ruleOption
			if o.Dtstart.IsZero() {
				o.Dtstart = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
			}
			rule, err := rrule.NewRRule(o)
			if err != nil {
				return false
			}

			for _, occurrence := range rule.Between(day.AddDate(0, 0, -1), day.AddDate(0, 0, 1), true) {
				if occurrence.Format(model.DateLayout) == day.Format(model.DateLayout) {
					return true
				}
			}
			return false
		}

		result = append(result, PolicyOverride{
			AppliesTo: appliesTo,
			Policy:    override.Policy,
		})

		logger.Debug("Converted policy override",
			zap.Int("index", i),
			zap.String("rrule", override.RRule))
	}

	return result, nil
}
