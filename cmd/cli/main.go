package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-cover/cmd/cli/commands"
	"github.com/jakechorley/shift-cover/internal/config"
	"github.com/jakechorley/shift-cover/pkg/clients/sheetsclient"
	"github.com/jakechorley/shift-cover/pkg/core/services"
	"github.com/jakechorley/shift-cover/pkg/postgres"
	"github.com/jakechorley/shift-cover/pkg/schedulefile"
	"github.com/jakechorley/shift-cover/pkg/utils/logging"
)

var env string

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Shift Cover CLI - Find replacements for uncovered shifts",
		Long:  `A CLI tool for ranking employees as replacements for a shift, scored against labor rules and fairness policy.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.FindCoverCmd(app))
	rootCmd.AddCommand(commands.ScoreEmployeeCmd(app))
	rootCmd.AddCommand(commands.MonthlyHoursCmd(app))
	rootCmd.AddCommand(commands.ListEmployeesCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads config, sets up the logger and connects the schedule source
func initApp(app *commands.AppContext) error {
	var err error
	app.Ctx = context.Background()

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger, err = logging.InitLogger(env, app.Cfg.LogsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("source", app.Cfg.Source))

	app.Engine, err = services.NewEngine(app.Cfg, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to build scoring engine: %w", err)
	}
	app.Logger.Debug("Scoring engine ready", zap.Int("policy_overrides", len(app.Engine.Overrides)))

	switch app.Cfg.Source {
	case config.SourcePostgres:
		app.Logger.Info("Connecting to database")
		app.Database, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL, app.Engine.Codes)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.Store = app.Database

	case config.SourceSheets:
		app.Logger.Info("Loading OAuth client configuration")
		oauthCfg, err := config.LoadOAuthClientWithEnv(env)
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}

		app.Logger.Info("Initializing sheets client")
		client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, env, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		app.Store = sheetsclient.NewScheduleStore(client, *app.Cfg.Sheets, app.Engine.Codes)

	case config.SourceFile:
		app.Logger.Info("Using schedule file", zap.String("path", app.Cfg.ScheduleFile))
		app.Store = schedulefile.NewStore(app.Cfg.ScheduleFile, app.Engine.Codes)

	default:
		return fmt.Errorf("unknown schedule source %q", app.Cfg.Source)
	}

	app.Logger.Debug("Schedule source ready")
	return nil
}
