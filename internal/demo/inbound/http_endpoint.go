package inbound

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shandysiswandi/structlog/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc uc
}

// Index lists the demo endpoints as absolute URLs.
func (h *HTTPEndpoint) Index(_ context.Context, r *http.Request) (any, error) {
	var b strings.Builder
	b.WriteString("These endpoints are available:\n")
	fmt.Fprintf(&b, " - %s\n", absoluteURL(r, pathFault))
	fmt.Fprintf(&b, " - %s\n", absoluteURL(r, dividePath("10", "2")))

	return pkgrouter.Text(b.String()), nil
}

func (h *HTTPEndpoint) Fault(ctx context.Context, _ *http.Request) (any, error) {
	if err := h.uc.Fault(ctx); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *HTTPEndpoint) Divide(ctx context.Context, _ *http.Request) (any, error) {
	result, err := h.uc.Divide(ctx, pkgrouter.GetParam(ctx, "a"), pkgrouter.GetParam(ctx, "b"))
	if err != nil {
		return nil, err
	}

	return pkgrouter.Text(fmt.Sprintf("%s / %s = %s\n", result.A, result.B, result.Result)), nil
}

func dividePath(a, b string) string {
	return "/divide/" + url.PathEscape(a) + "/by/" + url.PathEscape(b)
}

// absoluteURL resolves path against the URL the client used, honoring the
// X-Forwarded-Proto and X-Forwarded-Host headers set by proxies.
func absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := firstHeaderValue(r, "X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := r.Host
	if fwd := firstHeaderValue(r, "X-Forwarded-Host"); fwd != "" {
		host = fwd
	}

	u := url.URL{Scheme: scheme, Host: host, Path: path}
	return u.String()
}

func firstHeaderValue(r *http.Request, name string) string {
	v, _, _ := strings.Cut(r.Header.Get(name), ",")
	return strings.TrimSpace(v)
}
