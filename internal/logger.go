package internal

import (
	"os"

	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// logLevel is raised to debug by CHARTSMITH_LOG_LEVEL=DEBUG or the verbose flag.
var logLevel = new(slog.LevelVar)

// ProvideLogger sets up the slog configuration
func ProvideLogger() *slog.Logger {
	if os.Getenv("CHARTSMITH_LOG_LEVEL") == "DEBUG" {
		logLevel.Set(slog.LevelDebug)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))

	// Set this logger as the default
	slog.SetDefault(logger)

	return logger
}

var LoggerModule = fx.Options(
	fx.Provide(ProvideLogger),
	fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
		return &fxevent.SlogLogger{
			Logger: logger,
		}
	}),
)
