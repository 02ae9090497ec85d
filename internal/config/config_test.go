package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shift-cover/pkg/core/model"
	"github.com/jakechorley/shift-cover/pkg/core/scoring"
)

func intPtr(v int) *int {
	return &v
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		Source:      SourcePostgres,
		DatabaseURL: "postgres://localhost:5432/shifts",
		Policy: PolicyConfig{
			RestPenalty: intPtr(40),
		},
		Codes: map[string][]string{
			"dayOff":    {"F", "L"},
			"sickLeave": {"AT"},
		},
		PolicyOverrides: []PolicyOverride{
			{
				RRule:  "FREQ=WEEKLY;BYDAY=SU",
				Policy: PolicyConfig{WeekendOnePenalty: intPtr(10)},
			},
		},
		DefaultLimit: 10,
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingSourceSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"postgres without url", &Config{Source: SourcePostgres}},
		{"sheets without sheets", &Config{Source: SourceSheets}},
		{"sheets without roster tab", &Config{Source: SourceSheets, Sheets: &SheetsConfig{SpreadsheetID: "abc"}}},
		{"file without path", &Config{Source: SourceFile}},
		{"unknown source", &Config{Source: "mysql"}},
		{"no source", &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
		})
	}
}

func TestValidate_NegativeDefaultLimit(t *testing.T) {
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
		DefaultLimit: -1,
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
		PolicyOverrides: []PolicyOverride{
			{RRule: "INVALID_RRULE_SYNTAX"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_MultipleInvalidRRules(t *testing.T) {
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
		PolicyOverrides: []PolicyOverride{
			{RRule: "FREQ=WEEKLY;BYDAY=SU"},
			{RRule: "INVALID_RRULE"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "policyOverrides[1]")
}

func TestValidate_EmptyRRule(t *testing.T) {
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
		PolicyOverrides: []PolicyOverride{
			{RRule: "", Policy: PolicyConfig{RestPenalty: intPtr(10)}},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_ComplexValidRRule(t *testing.T) {
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
		PolicyOverrides: []PolicyOverride{
			{RRule: "FREQ=MONTHLY;BYDAY=1SU;BYMONTH=1,4,7,10"},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_UnknownStatusInCodes(t *testing.T) {
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
		Codes:        map[string][]string{"working": {"W"}},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid codes entry")
}

func TestValidate_InconsistentPolicy(t *testing.T) {
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
		Policy: PolicyConfig{
			LeaderEarliestStart: intPtr(20),
			LeaderLatestEnd:     intPtr(18),
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid policy")
}

func TestValidate_InconsistentOverridePolicy(t *testing.T) {
	nightCode := "N"
	cfg := &Config{
		Source:       SourceFile,
		ScheduleFile: "schedule.yaml",
		PolicyOverrides: []PolicyOverride{
			{RRule: "FREQ=WEEKLY;BYDAY=SA", Policy: PolicyConfig{NightShiftCode: &nightCode}},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid policy in policyOverrides[0]")
}

func TestBasePolicy(t *testing.T) {
	weeklyHours := 36.0
	cfg := &Config{
		Policy: PolicyConfig{
			RestPenalty:    intPtr(30),
			MaxWeeklyHours: &weeklyHours,
		},
	}

	policy, err := cfg.BasePolicy()
	require.NoError(t, err)

	expected := scoring.DefaultPolicy()
	expected.RestPenalty = 30
	expected.MaxWeeklyHours = 36
	assert.Equal(t, expected, policy)
}

func TestCodeTable(t *testing.T) {
	cfg := &Config{}
	codes, err := cfg.CodeTable()
	require.NoError(t, err)
	assert.Equal(t, model.StatusSickLeave, codes.Classify("AT"))

	cfg.Codes = map[string][]string{
		"dayOff":    {"D"},
		"vacation":  {"V", "hol"},
		"sickLeave": {"S"},
	}
	codes, err = cfg.CodeTable()
	require.NoError(t, err)
	assert.Equal(t, model.StatusDayOff, codes.Classify("d"))
	assert.Equal(t, model.StatusVacation, codes.Classify("HOL"))
	assert.Equal(t, model.StatusUnknown, codes.Classify("AT"))
	assert.Equal(t, []string{"HOL", "S", "V"}, codes.LeaveCodes())
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
source: sheets
sheets:
  spreadsheetID: "sheet123"
  rosterTab: "Roster"
  preferencesTab: "Preferences"
policy:
  restPenalty: 45
  nightShiftCode: "21-9"
codes:
  dayOff: ["F"]
  vacation: ["FE", "VAC"]
policyOverrides:
  - rrule: "FREQ=WEEKLY;BYDAY=SA,SU"
    policy:
      weekendBothPenalty: 70
defaultLimit: 10
logsDir: "/tmp/shift-cover-logs"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, SourceSheets, cfg.Source)
	require.NotNil(t, cfg.Sheets)
	assert.Equal(t, "sheet123", cfg.Sheets.SpreadsheetID)
	assert.Equal(t, "Roster", cfg.Sheets.RosterTab)
	assert.Equal(t, "Preferences", cfg.Sheets.PreferencesTab)
	assert.Empty(t, cfg.Sheets.ContactHoursTab)
	assert.Equal(t, 10, cfg.DefaultLimit)
	assert.Equal(t, "/tmp/shift-cover-logs", cfg.LogsDir)

	require.NotNil(t, cfg.Policy.RestPenalty)
	assert.Equal(t, 45, *cfg.Policy.RestPenalty)
	require.NotNil(t, cfg.Policy.NightShiftCode)
	assert.Equal(t, "21-9", *cfg.Policy.NightShiftCode)
	assert.Nil(t, cfg.Policy.OvertimePenalty)

	assert.Equal(t, []string{"FE", "VAC"}, cfg.Codes["vacation"])

	require.Len(t, cfg.PolicyOverrides, 1)
	override := cfg.PolicyOverrides[0]
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SA,SU", override.RRule)
	require.NotNil(t, override.Policy.WeekendBothPenalty)
	assert.Equal(t, 70, *override.Policy.WeekendBothPenalty)
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_rrule.yaml")

	invalidConfig := `
source: file
scheduleFile: schedule.yaml
policyOverrides:
  - rrule: "INVALID_RRULE_SYNTAX"
    policy:
      restPenalty: 10
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	minimalConfig := `
source: postgres
databaseURL: "postgres://localhost:5432/shifts"
`

	err := os.WriteFile(configPath, []byte(minimalConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/shifts", cfg.DatabaseURL)
	assert.Nil(t, cfg.Sheets)
	assert.Empty(t, cfg.PolicyOverrides)
	assert.Empty(t, cfg.Codes)
	assert.Zero(t, cfg.DefaultLimit)
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
source: postgres
# Missing databaseURL
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
source: "file"
  invalid indentation
scheduleFile: "schedule.yaml"
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_PolicyOverrideWithoutRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_override.yaml")

	invalidOverride := `
source: file
scheduleFile: schedule.yaml
policyOverrides:
  - policy:
      restPenalty: 10
`

	err := os.WriteFile(configPath, []byte(invalidOverride), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_OverridePolicyOutOfRange(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "out_of_range.yaml")

	outOfRange := `
source: file
scheduleFile: schedule.yaml
policyOverrides:
  - rrule: "FREQ=DAILY"
    policy:
      dailyRestHours: 30
`

	err := os.WriteFile(configPath, []byte(outOfRange), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadOAuthClientFromPath(t *testing.T) {
	tmpDir := t.TempDir()
	oauthPath := filepath.Join(tmpDir, "oauthClient.json")

	valid := `{
  "installed": {
    "client_id": "id.apps.googleusercontent.com",
    "project_id": "shift-cover",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "client_secret": "secret",
    "redirect_uris": ["http://localhost"]
  }
}`
	require.NoError(t, os.WriteFile(oauthPath, []byte(valid), 0600))

	cfg, err := LoadOAuthClientFromPath(oauthPath)
	require.NoError(t, err)
	assert.Equal(t, "shift-cover", cfg.Installed.ProjectID)

	invalidPath := filepath.Join(tmpDir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidPath, []byte(`{"installed": {"client_id": "id"}}`), 0600))

	_, err = LoadOAuthClientFromPath(invalidPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "oauth client validation failed")
}

func TestLoadFromPath_DatabaseURLFromEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("source: postgres\n"), 0644))

	t.Setenv(DatabaseURLEnv, "postgres://cover@localhost/cover")

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)
	assert.Equal(t, "postgres://cover@localhost/cover", cfg.DatabaseURL)
}

func TestLoadDotEnv(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env.test"), []byte(DatabaseURLEnv+"=postgres://test@localhost/cover\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".env"), []byte(DatabaseURLEnv+"=postgres://shared@localhost/cover\n"), 0644))
	t.Chdir(tmpDir)

	// Registers restore of the original value before unsetting
	t.Setenv(DatabaseURLEnv, "")
	require.NoError(t, os.Unsetenv(DatabaseURLEnv))

	loadDotEnv("test")

	assert.Equal(t, "postgres://test@localhost/cover", os.Getenv(DatabaseURLEnv))
}
