package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/Kaushallx0/seatxray/internal/seatxray"
)

func (a *App) initModules() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	if a.config.GetBool("modules.seatxray.enabled") {
		mod, err := seatxray.New(seatxray.Dependency{
			Config: a.config,
			Router: a.router,
		})
		if err != nil {
			slog.Error("failed to init module seatxray", "error", err)
			os.Exit(1)
		}
		a.closerFn["seatxray"] = mod.Close
	}
}
