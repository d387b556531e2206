package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.opentelemetry.io/otel/propagation"

	"github.com/shandysiswandi/structlog/internal/pkg/pkgerror"
	"github.com/shandysiswandi/structlog/internal/pkg/pkglog"
)

// Handler is the application-style handler used by this router.
//
// It returns a response payload or an error. Payloads of type Text are
// written as text/plain, everything else is JSON encoded.
type Handler func(ctx context.Context, r *http.Request) (any, error)

// Text is a response payload written verbatim as text/plain.
type Text string

// Router is an http.Handler that wraps httprouter and two middleware stacks:
// one that runs for every request and one that runs for matched routes only.
type Router struct {
	hr         *httprouter.Router
	root       http.Handler
	global     []Middleware
	mws        []Middleware
	errorCodec func(ctx context.Context, w http.ResponseWriter, err error)
	encoder    func(ctx context.Context, w http.ResponseWriter, resp any)
}

// NewRouter builds the default application router with standard middleware.
//
// Every request goes through, in order: the error responder, the request
// context boundary and the correlation ID middleware. Nothing can be placed
// before the boundary.
func NewRouter(uuid Generator) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encodeError(r.Context(), w, pkgerror.NewNotFound("endpoint not found"))
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encodeError(r.Context(), w, pkgerror.NewBusiness("method not allowed", pkgerror.CodeMethodNotAllowed))
		}),
	}

	ro := &Router{
		hr:         hr,
		errorCodec: encodeError,
		encoder:    encodeSuccess,
		global: []Middleware{
			middlewareRecoverer,
			middlewareRequestContext(propagation.TraceContext{}),
			middlewareCorrelationID(uuid),
		},
	}
	ro.root = Chain(ro.hr, ro.global...)

	ro.Handle(http.MethodGet, "/health", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"message": "server is running well"}, http.StatusOK)
	}))

	return ro
}

// Wrap appends middleware that runs for every request, matched or not, after
// the built-in stack.
func (r *Router) Wrap(mws ...Middleware) {
	r.global = append(r.global, mws...)
	r.root = Chain(r.hr, r.global...)
}

// Use appends middleware to the per-route stack. It only affects routes
// registered afterwards.
func (r *Router) Use(mws ...Middleware) {
	r.mws = append(r.mws, mws...)
}

// GET registers a GET endpoint using the application Handler signature.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

// Handle registers a raw http.Handler with the router.
func (r *Router) Handle(method, path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(h, r.routeMiddleware(path, mws)...))
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	r.Handle(method, path, http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		resp, err := h(re.Context(), re)
		if err != nil {
			r.errorCodec(re.Context(), w, err)
			return
		}
		r.encoder(re.Context(), w, resp)
	}), mws...)
}

func (r *Router) routeMiddleware(path string, extra []Middleware) []Middleware {
	mws := make([]Middleware, 0, len(r.mws)+len(extra)+1)
	mws = append(mws, middlewareAccessLog(path))
	mws = append(mws, r.mws...)
	return append(mws, extra...)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.root.ServeHTTP(w, req)
}

type errorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Error   map[string]string `json:"error,omitempty"`
}

type successReponse struct {
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// encodeError maps client errors to their status. Anything else is an
// unhandled failure: it is handed to the request context boundary and the
// client gets a generic 500.
func encodeError(ctx context.Context, w http.ResponseWriter, err error) {
	var gerr *pkgerror.Error
	if !errors.As(err, &gerr) || gerr.Type() == pkgerror.TypeServer {
		if !raise(ctx, err) {
			slog.ErrorContext(ctx, "Request error",
				pkglog.KeyErrorMessage, err.Error(),
				pkglog.KeyErrorStacktrace, pkglog.StackTrace(err),
			)
		}
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	slog.DebugContext(ctx, "request rejected",
		"error.type", gerr.Type().String(),
		"error.code", gerr.Code().String(),
		pkglog.KeyErrorMessage, err.Error(),
	)

	errResp := errorResponse{Message: gerr.Msg(), Code: gerr.Code().String()}
	if gerr.Type() == pkgerror.TypeValidation && gerr.Unwrap() != nil {
		errResp.Error = map[string]string{"reason": gerr.Unwrap().Error()}
	}

	writeJSON(w, errResp, gerr.StatusCode())
}

func encodeSuccess(_ context.Context, w http.ResponseWriter, resp any) {
	if text, ok := resp.(Text); ok {
		writeText(w, string(text), http.StatusOK)
		return
	}

	code := http.StatusOK
	if sc, ok := resp.(interface {
		StatusCode() int
	}); ok {
		code = sc.StatusCode()
	}

	if code == http.StatusNoContent || resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg := "request has been successfully"
	if m, ok := resp.(interface {
		Message() string
	}); ok {
		msg = m.Message()
	}

	writeJSON(w, successReponse{Message: msg, Data: resp}, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
	}
}

func writeText(w http.ResponseWriter, body string, code int) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	if _, err := io.WriteString(w, body); err != nil {
		slog.Error("server: failed to write text body", "error", err)
	}
}
