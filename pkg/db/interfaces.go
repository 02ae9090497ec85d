package db

import (
	"context"

	"github.com/jakechorley/shift-cover/pkg/core/model"
)

// ScheduleStore defines the interface for loading schedules.
// The Postgres, Google Sheets and YAML file suppliers all implement this interface.
type ScheduleStore interface {
	// GetSchedule returns the schedule for month ("2006-01"), including enough
	// of the neighbouring months for the rest and fairness rules
	GetSchedule(ctx context.Context, month string) (*model.Schedule, error)
}
