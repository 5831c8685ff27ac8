package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var Logger *slog.Logger

func init() {
	// Create logs directory
	os.MkdirAll("logs", 0755)

	// Create log file, falling back to a silent logger when the directory is read-only
	var out io.Writer = io.Discard
	logFile, err := os.OpenFile(filepath.Join("logs", "agedasn.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err == nil {
		out = logFile
	}

	Logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// WithRun returns a logger tagging every record with the given run id
func WithRun(runID string) *slog.Logger {
	return Logger.With("run_id", runID)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
