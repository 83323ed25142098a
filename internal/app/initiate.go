package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Kaushallx0/seatxray/internal/pkg/pkgconfig"
	"github.com/Kaushallx0/seatxray/internal/pkg/pkgrouter"
	"github.com/Kaushallx0/seatxray/internal/pkg/pkguid"
	"github.com/rs/cors"
)

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initHTTPServer() {
	a.uuid = pkguid.NewUUID()
	a.router = pkgrouter.NewRouter(a.uuid)

	origins := []string{"*"}
	if value := strings.TrimSpace(a.config.GetString("app.server.cors.allowed_origins")); value != "" {
		origins = strings.Split(value, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderRequestID},
	})

	writeTimeout := 60 * time.Second
	if seconds := a.config.GetInt("app.server.write_timeout_seconds"); seconds > 0 {
		writeTimeout = time.Duration(seconds) * time.Second
	}

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
	}
}

func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
