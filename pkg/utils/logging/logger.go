package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogsDir is used when no logs directory is configured
const DefaultLogsDir = "logs"

// InitLogger initializes a zap logger with console and file outputs.
// env prefixes the log file name; logsDir defaults to DefaultLogsDir.
func InitLogger(env, logsDir string) (*zap.Logger, error) {
	if logsDir == "" {
		logsDir = DefaultLogsDir
	}
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFile, err := os.OpenFile(LogFilePath(logsDir, env, time.Now()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return zap.New(newCore(zapcore.AddSync(os.Stdout), zapcore.AddSync(logFile)), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

// LogFilePath returns the log file for an environment started at t
func LogFilePath(logsDir, env string, t time.Time) string {
	return filepath.Join(logsDir, fmt.Sprintf("%s_%s.log", env, t.Format("2006-01-02_15-04-05")))
}

// newCore tees a coloured console output at Info and a JSON file output at Debug
func newCore(console, file zapcore.WriteSyncer) zapcore.Core {
	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), console, zapcore.InfoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), file, zapcore.DebugLevel),
	)
}
