package inbound

import (
	"context"

	"github.com/shandysiswandi/structlog/internal/demo/usecase"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgrouter"
)

type uc interface {
	Divide(ctx context.Context, a, b string) (usecase.DivideResult, error)
	Fault(ctx context.Context) error
}

const (
	pathIndex  = "/"
	pathFault  = "/fault"
	pathDivide = "/divide/:a/by/:b"
)

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET(pathIndex, end.Index)
	r.GET(pathFault, end.Fault)
	r.GET(pathDivide, end.Divide)
}
