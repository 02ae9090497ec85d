package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/scoring"
)

// Schedule sources
const (
	SourcePostgres = "postgres"
	SourceSheets   = "sheets"
	SourceFile     = "file"
)

// DatabaseURLEnv overrides databaseURL so credentials can stay out of the config file
const DatabaseURLEnv = "SHIFT_COVER_DATABASE_URL"

// SheetsConfig locates the schedule in a Google spreadsheet
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheetID" validate:"required"`
	RosterTab       string `yaml:"rosterTab" validate:"required"`
	PreferencesTab  string `yaml:"preferencesTab,omitempty"`
	ContactHoursTab string `yaml:"contactHoursTab,omitempty"`
}

// PolicyConfig overrides individual scoring policy fields.
// Unset fields keep the value they are applied to.
type PolicyConfig struct {
	BaseScore            *int     `yaml:"baseScore,omitempty" validate:"omitempty,min=0"`
	MaxScore             *int     `yaml:"maxScore,omitempty" validate:"omitempty,min=1"`
	DailyRestHours       *int     `yaml:"dailyRestHours,omitempty" validate:"omitempty,min=0,max=24"`
	WeeklyRestHours      *int     `yaml:"weeklyRestHours,omitempty" validate:"omitempty,min=0,max=168"`
	MaxWeeklyHours       *float64 `yaml:"maxWeeklyHours,omitempty" validate:"omitempty,gt=0"`
	RestPenalty          *int     `yaml:"restPenalty,omitempty" validate:"omitempty,min=0"`
	OvertimePenalty      *int     `yaml:"overtimePenalty,omitempty" validate:"omitempty,min=0"`
	NightShiftCode       *string  `yaml:"nightShiftCode,omitempty"`
	DoubleNightPenalty   *int     `yaml:"doubleNightPenalty,omitempty" validate:"omitempty,min=0"`
	SingleNightPenalty   *int     `yaml:"singleNightPenalty,omitempty" validate:"omitempty,min=0"`
	WeekendBothPenalty   *int     `yaml:"weekendBothPenalty,omitempty" validate:"omitempty,min=0"`
	WeekendOnePenalty    *int     `yaml:"weekendOnePenalty,omitempty" validate:"omitempty,min=0"`
	BalanceCap           *int     `yaml:"balanceCap,omitempty" validate:"omitempty,min=0"`
	BalanceNoteThreshold *int     `yaml:"balanceNoteThreshold,omitempty" validate:"omitempty,min=0"`
	MaxConsecutiveDays   *int     `yaml:"maxConsecutiveDays,omitempty" validate:"omitempty,min=1"`
	ConsecutiveLookback  *int     `yaml:"consecutiveLookback,omitempty" validate:"omitempty,min=1"`
	LeaderEarliestStart  *int     `yaml:"leaderEarliestStart,omitempty" validate:"omitempty,min=0,max=23"`
	LeaderLatestEnd      *int     `yaml:"leaderLatestEnd,omitempty" validate:"omitempty,min=1,max=24"`
}

// PolicyOverride applies policy changes on the dates matched by an RRULE
type PolicyOverride struct {
	RRule  string       `yaml:"rrule" validate:"required"`
	Policy PolicyConfig `yaml:"policy"`
}

// Config represents the application configuration
type Config struct {
	Source          string              `yaml:"source" validate:"required,oneof=postgres sheets file"`
	DatabaseURL     string              `yaml:"databaseURL,omitempty" validate:"required_if=Source postgres"`
	Sheets          *SheetsConfig       `yaml:"sheets,omitempty" validate:"required_if=Source sheets"`
	ScheduleFile    string              `yaml:"scheduleFile,omitempty" validate:"required_if=Source file"`
	Policy          PolicyConfig        `yaml:"policy,omitempty"`
	Codes           map[string][]string `yaml:"codes,omitempty" validate:"dive,dive,required"`
	PolicyOverrides []PolicyOverride    `yaml:"policyOverrides,omitempty" validate:"dive"`
	DefaultLimit    int                 `yaml:"defaultLimit,omitempty" validate:"min=0"`
	LogsDir         string              `yaml:"logsDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" will look for "shift_cover_config.test.yaml".
// Variables from ".env.<env>" and ".env" in the working directory are loaded first.
func LoadWithEnv(env string) (*Config, error) {
	loadDotEnv(env)

	configPath, err := findFile(configFileName(env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.DatabaseURL = url
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, the code table, the rrule
// syntax and the resulting policies
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := cfg.CodeTable(); err != nil {
		return err
	}

	base, err := cfg.BasePolicy()
	if err != nil {
		return err
	}

	for i, override := range cfg.PolicyOverrides {
		if _, err := rrule.StrToRRule(override.RRule); err != nil {
			return fmt.Errorf("invalid rrule in policyOverrides[%d]: %w", i, err)
		}
		if err := override.Policy.Apply(base).Validate(); err != nil {
			return fmt.Errorf("invalid policy in policyOverrides[%d]: %w", i, err)
		}
	}

	return nil
}

// BasePolicy returns the default policy with the configured policy applied
func (c *Config) BasePolicy() (scoring.Policy, error) {
	policy := c.Policy.Apply(scoring.DefaultPolicy())
	if err := policy.Validate(); err != nil {
		return scoring.Policy{}, fmt.Errorf("invalid policy: %w", err)
	}
	return policy, nil
}

// CodeTable returns the configured code table, or the default one when no codes are configured.
// Keys are status names such as "dayOff" or "sickLeave".
func (c *Config) CodeTable() (model.CodeTable, error) {
	if len(c.Codes) == 0 {
		return model.DefaultCodeTable(), nil
	}

	entries := make(map[model.Status][]string, len(c.Codes))
	for name, codes := range c.Codes {
		status, err := model.ParseStatus(name)
		if err != nil {
			return model.CodeTable{}, fmt.Errorf("invalid codes entry: %w", err)
		}
		entries[status] = codes
	}
	return model.NewCodeTable(entries), nil
}

// Apply returns p with every set field replaced
func (pc PolicyConfig) Apply(p scoring.Policy) scoring.Policy {
	setInt(&p.BaseScore, pc.BaseScore)
	setInt(&p.MaxScore, pc.MaxScore)
	setInt(&p.DailyRestHours, pc.DailyRestHours)
	setInt(&p.WeeklyRestHours, pc.WeeklyRestHours)
	if pc.MaxWeeklyHours != nil {
		p.MaxWeeklyHours = *pc.MaxWeeklyHours
	}
	setInt(&p.RestPenalty, pc.RestPenalty)
	setInt(&p.OvertimePenalty, pc.OvertimePenalty)
	if pc.NightShiftCode != nil {
		p.NightShiftCode = *pc.NightShiftCode
	}
	setInt(&p.DoubleNightPenalty, pc.DoubleNightPenalty)
	setInt(&p.SingleNightPenalty, pc.SingleNightPenalty)
	setInt(&p.WeekendBothPenalty, pc.WeekendBothPenalty)
	setInt(&p.WeekendOnePenalty, pc.WeekendOnePenalty)
	setInt(&p.BalanceCap, pc.BalanceCap)
	setInt(&p.BalanceNoteThreshold, pc.BalanceNoteThreshold)
	setInt(&p.MaxConsecutiveDays, pc.MaxConsecutiveDays)
	setInt(&p.ConsecutiveLookback, pc.ConsecutiveLookback)
	setInt(&p.LeaderEarliestStart, pc.LeaderEarliestStart)
	setInt(&p.LeaderLatestEnd, pc.LeaderLatestEnd)
	return p
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func configFileName(env string) string {
	if env == "" {
		return "shift_cover_config.yaml"
	}
	return "shift_cover_config." + env + ".yaml"
}

// findFile searches for fileName in the current directory and then the home directory
func findFile(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
