package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/rs/cors"

	"github.com/shandysiswandi/structlog/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/structlog/internal/pkg/pkglog"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgmetrics"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/structlog/internal/pkg/pkguid"
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
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
}

func (a *App) initLogging() {
	pkglog.InitLogging(pkglog.Options{
		Level:   a.config.GetString("log.level"),
		Service: a.config.GetString("service.name"),
	})
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(pkgroutine.DefaultMaxGoroutine)
	a.uuid = pkguid.NewUUID()

	sf, err := pkguid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.snowflake = sf
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("cors.allowed_origins"),
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID},
	})
	a.router.Wrap(corsHandler.Handler)

	a.router.Handle(http.MethodGet, "/metrics", pkgmetrics.Handler())

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           a.router,
		ReadHeaderTimeout: a.config.GetDuration("server.read_header_timeout"),
	}
}

//nolint:unparam // is always nil
func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
