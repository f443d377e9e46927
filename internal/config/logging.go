package config

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger creates the process logger: text to stderr plus JSON to a
// log file, fanned out. quiet drops the stderr handler; the TUI needs
// that because stderr writes would tear its screen, so `flint strike`
// logs to the file only. Returns the logger and a cleanup function that
// closes the file.
func SetupLogger(logFile string, level slog.Level, quiet bool) (*slog.Logger, func() error) {
	var handlers []slog.Handler
	if !quiet {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}

	cleanup := func() error { return nil }
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		if !quiet {
			slog.Error("failed to open log file, using stderr only", "error", err, "file", logFile)
		}
	} else {
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{
			Level: level,
		}))
		cleanup = file.Close
	}

	// Both outputs unavailable: keep slog calls harmless.
	if len(handlers) == 0 {
		handlers = append(handlers, slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(slogmulti.Fanout(handlers...)), cleanup
}

// SetupLoggerWithWriters creates a logger with custom writers (for testing).
func SetupLoggerWithWriters(stderr, file io.Writer, level slog.Level) *slog.Logger {
	stderrHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
}
