package logging

import (
	"log/slog"
	"os"
)

// Setup installs the portal's boot-time logger, JSON to stdout at info level.
// Once the database is up, main swaps it for a MultiHandler that also feeds
// the system_logs sink.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
