package pkglog

import (
	"log/slog"
	"os"
)

func InitLogging() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
