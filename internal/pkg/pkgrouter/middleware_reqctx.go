package pkgrouter

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"

	"go.opentelemetry.io/otel/propagation"

	"github.com/shandysiswandi/structlog/internal/pkg/pkglog"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgmetrics"
)

type failureContextKey struct{}

// failure is the slot through which code nested in a request hands an
// unhandled error to the request context boundary.
type failure struct {
	err   error
	stack string
}

// raise records err as the request's unhandled failure. Only the first one is
// kept. It reports false when ctx does not belong to a request boundary.
func raise(ctx context.Context, err error) bool {
	f, ok := ctx.Value(failureContextKey{}).(*failure)
	if !ok {
		return false
	}
	if f.err == nil {
		f.err = err
		f.stack = pkglog.StackTrace(err)
	}
	return true
}

// middlewareRequestContext scopes the request attributes to the request's
// context for its whole lifetime and logs any failure that escapes the
// handlers below it. Panics are re-raised with the same value after logging.
func middlewareRequestContext(propagator propagation.TextMapPropagator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, fields := pkglog.WithFields(ctx)
			defer fields.Remove(pkglog.KeyRequestURI, pkglog.KeyUserAgent, pkglog.KeyForwardedFor)

			fields.Set(pkglog.KeyRequestURI, r.URL.EscapedPath())
			fields.Set(pkglog.KeyUserAgent, r.Header.Get("User-Agent"))
			fields.Set(pkglog.KeyForwardedFor, r.Header.Get("X-Forwarded-For"))

			fail := &failure{}
			ctx = context.WithValue(ctx, failureContextKey{}, fail)

			defer func() {
				if rvr := recover(); rvr != nil {
					//nolint:err113,errorlint // this must compare directly
					if rvr != http.ErrAbortHandler {
						logFailure(ctx, pkgmetrics.FailurePanic, pkglog.PanicMessage(rvr), string(debug.Stack()))
					}
					panic(rvr)
				}

				if fail.err != nil {
					logFailure(ctx, pkgmetrics.FailureError, fail.err.Error(), fail.stack)
				}
			}()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func logFailure(ctx context.Context, kind, msg, stack string) {
	pkgmetrics.RequestFailuresTotal.WithLabelValues(kind).Inc()

	slog.ErrorContext(ctx, "Request error",
		pkglog.KeyErrorMessage, msg,
		pkglog.KeyErrorStacktrace, stack,
	)
}
