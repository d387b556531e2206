package pkglog

import (
	"context"
	"log/slog"
	"sync"
)

// Keys of the request attributes set by the HTTP request context middleware.
const (
	KeyRequestURI   = "req.uri"
	KeyUserAgent    = "req.userAgent"
	KeyForwardedFor = "req.xForwardedFor"
)

// Keys used when logging a failed request.
const (
	KeyErrorMessage    = "error.message"
	KeyErrorStacktrace = "error.stacktrace"
)

type fieldsContextKey struct{}

// Fields is an ordered set of string attributes scoped to one unit of work,
// usually a single HTTP request. Every record logged with a context carrying
// Fields gets a copy of them.
//
// The set is safe for concurrent use so handlers may pass their context to
// goroutines they start.
type Fields struct {
	mu    sync.RWMutex
	attrs []slog.Attr
}

// WithFields returns a child context carrying a new, empty Fields set.
func WithFields(ctx context.Context) (context.Context, *Fields) {
	f := &Fields{}
	return context.WithValue(ctx, fieldsContextKey{}, f), f
}

// FieldsFromContext returns the Fields carried by ctx, or nil.
func FieldsFromContext(ctx context.Context) *Fields {
	f, _ := ctx.Value(fieldsContextKey{}).(*Fields)
	return f
}

// Set stores value under key, replacing an existing value in place.
func (f *Fields) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.attrs {
		if f.attrs[i].Key == key {
			f.attrs[i].Value = slog.StringValue(value)
			return
		}
	}
	f.attrs = append(f.attrs, slog.String(key, value))
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (string, bool) {
	if f == nil {
		return "", false
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, a := range f.attrs {
		if a.Key == key {
			return a.Value.String(), true
		}
	}
	return "", false
}

// Remove deletes the given keys. Unknown keys are ignored.
func (f *Fields) Remove(keys ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.attrs[:0]
	for _, a := range f.attrs {
		if !contains(keys, a.Key) {
			kept = append(kept, a)
		}
	}
	clear(f.attrs[len(kept):])
	f.attrs = kept
}

// Len returns the number of stored attributes.
func (f *Fields) Len() int {
	if f == nil {
		return 0
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.attrs)
}

// Attrs returns a copy of the stored attributes in insertion order.
func (f *Fields) Attrs() []slog.Attr {
	if f == nil {
		return nil
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return append([]slog.Attr(nil), f.attrs...)
}

// Map returns the stored attributes as a map.
func (f *Fields) Map() map[string]string {
	m := make(map[string]string, f.Len())
	for _, a := range f.Attrs() {
		m[a.Key] = a.Value.String()
	}
	return m
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
