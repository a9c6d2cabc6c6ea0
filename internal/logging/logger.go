package logging

import (
	"log/slog"
	"os"
)

// Setup installs the process-wide slog logger: JSON records to stdout at
// info level. Once the database is connected, main replaces it with a
// MultiHandler that also persists records to the system_logs table.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
