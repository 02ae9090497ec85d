package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/shift-cover/internal/config"
	"github.com/jakechorley/shift-cover/pkg/core/services"
	"github.com/jakechorley/shift-cover/pkg/db"
	"github.com/jakechorley/shift-cover/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Engine *services.Engine
	Store  db.ScheduleStore

	// Database is only set when the schedule source is postgres
	Database *postgres.DB

	Logger *zap.Logger
	Ctx    context.Context
}
