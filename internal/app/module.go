package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/structlog/internal/demo"
)

func (a *App) initModules() {
	err := demo.New(demo.Dependency{
		Config:    a.config,
		Router:    a.router,
		Goroutine: a.goroutine,
		Context:   a.ctx,
		ID:        a.snowflake,
	})
	if err != nil {
		slog.Error("failed to init module demo", "error", err)
		os.Exit(1)
	}
}
