package demo

import (
	"context"
	"errors"

	"github.com/shandysiswandi/structlog/internal/demo/emitter"
	"github.com/shandysiswandi/structlog/internal/demo/inbound"
	"github.com/shandysiswandi/structlog/internal/demo/usecase"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/structlog/internal/pkg/pkguid"
)

var errMissingDependency = errors.New("demo: config, router and goroutine manager are required")

type Dependency struct {
	Config    pkgconfig.Config
	Router    *pkgrouter.Router
	Goroutine *pkgroutine.Manager
	Context   context.Context
	ID        pkguid.NumberID
}

// New registers the demo endpoints and starts the background emitter on the
// goroutine manager. The emitter stops when dep.Context is canceled.
func New(dep Dependency) error {
	if dep.Config == nil || dep.Router == nil || dep.Goroutine == nil {
		return errMissingDependency
	}
	if dep.Context == nil {
		dep.Context = context.Background()
	}

	inbound.RegisterHTTPEndpoint(dep.Router, usecase.New())

	if dep.Config.GetBool("emitter.enabled") {
		em := emitter.New(dep.Config.GetDuration("emitter.interval"), dep.ID)
		dep.Goroutine.Go(dep.Context, "emitter", em.Run)
	}

	return nil
}
