package pkgrouter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/structlog/internal/pkg/pkgerror"
	"github.com/shandysiswandi/structlog/internal/pkg/pkglog"
)

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRouterTextPayload(t *testing.T) {
	captureLogs(t)

	ro := NewRouter(&staticGenerator{value: "cid"})
	ro.GET("/text", func(context.Context, *http.Request) (any, error) {
		return Text("hello\n"), nil
	})

	rec := serve(t, ro, "/text")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type: %q", ct)
	}
	if rec.Body.String() != "hello\n" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
	if rec.Header().Get(HeaderCorrelationID) != "cid" {
		t.Fatalf("expected correlation id header")
	}
}

func TestRouterServerErrorLoggedOnce(t *testing.T) {
	logs := captureLogs(t)

	ro := NewRouter(nil)
	ro.GET("/fault", func(ctx context.Context, _ *http.Request) (any, error) {
		slog.InfoContext(ctx, "I'm about to throw an error")
		return nil, pkgerror.NewServer(errors.New("Bad luck, this is an error"))
	})

	rec := serve(t, ro, "/fault")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "Internal server error" {
		t.Fatalf("unexpected body: %+v", body)
	}

	lines := logs()
	errs := errorLines(lines)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error line, got %d", len(errs))
	}
	if errs[0][pkglog.KeyErrorMessage] != "Bad luck, this is an error" {
		t.Fatalf("unexpected error.message: %v", errs[0][pkglog.KeyErrorMessage])
	}
	if stack, _ := errs[0][pkglog.KeyErrorStacktrace].(string); !strings.Contains(stack, "TestRouterServerErrorLoggedOnce") {
		t.Fatalf("expected stack pointing at the handler, got %q", stack)
	}
	for _, l := range lines {
		if l[pkglog.KeyRequestURI] != "/fault" {
			t.Fatalf("expected every line to carry the request uri, got %v", l)
		}
	}
}

func TestRouterClientErrorNotLogged(t *testing.T) {
	logs := captureLogs(t)

	ro := NewRouter(nil)
	ro.GET("/invalid", func(context.Context, *http.Request) (any, error) {
		return nil, pkgerror.NewInvalidInput(errors.New("a must be a number"))
	})

	rec := serve(t, ro, "/invalid")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error["reason"] != "a must be a number" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if errs := errorLines(logs()); len(errs) != 0 {
		t.Fatalf("expected no error lines, got %v", errs)
	}
}

func TestRouterPanicBecomes500(t *testing.T) {
	logs := captureLogs(t)

	ro := NewRouter(nil)
	ro.GET("/panic", func(context.Context, *http.Request) (any, error) {
		panic(errors.New("kaboom"))
	})

	rec := serve(t, ro, "/panic")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	errs := errorLines(logs())
	if len(errs) != 1 || errs[0][pkglog.KeyErrorMessage] != "kaboom" {
		t.Fatalf("expected one error line for the panic, got %v", errs)
	}
}

func TestRouterNotFoundRunsThroughBoundary(t *testing.T) {
	captureLogs(t)

	ro := NewRouter(nil)

	var uri string
	ro.Wrap(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uri, _ = pkglog.FieldsFromContext(r.Context()).Get(pkglog.KeyRequestURI)
			next.ServeHTTP(w, r)
		})
	})

	rec := serve(t, ro, "/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if uri != "/missing" {
		t.Fatalf("expected wrapped middleware to see request fields, got %q", uri)
	}

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != "endpoint not found" || body.Code != "ERROR_CODE_NOT_FOUND" {
		t.Fatalf("unexpected not found body: %+v", body)
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	logs := captureLogs(t)

	ro := NewRouter(nil)
	ro.GET("/only-get", func(context.Context, *http.Request) (any, error) {
		return Text("ok"), nil
	})

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/only-get", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "ERROR_CODE_METHOD_NOT_ALLOWED" {
		t.Fatalf("unexpected code: %q", body.Code)
	}
	if errs := errorLines(logs()); len(errs) != 0 {
		t.Fatalf("expected no error lines for a rejected method, got %v", errs)
	}
}

func TestRouterAccessLog(t *testing.T) {
	logs := captureLogs(t)

	ro := NewRouter(nil)
	ro.GET("/items/:id", func(_ context.Context, r *http.Request) (any, error) {
		return map[string]string{"id": GetParam(r.Context(), "id")}, nil
	})

	rec := serve(t, ro, "/items/42")
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var sent logLine
	for _, l := range logs() {
		if l["msg"] == "response sent" {
			sent = l
		}
	}
	if sent == nil {
		t.Fatalf("expected a response sent line")
	}
	if sent["route"] != "/items/:id" || sent["status"] != float64(http.StatusOK) {
		t.Fatalf("unexpected access line: %v", sent)
	}
	if sent[pkglog.KeyRequestURI] != "/items/42" {
		t.Fatalf("expected request fields on access line: %v", sent)
	}
}
