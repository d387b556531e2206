package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/structlog/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/structlog/internal/pkg/pkglog"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/structlog/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	//
	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging(pkglog.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLogging()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
