package pkglog

import "context"

type correlationIDContextKey struct{}

// GetCorrelationID returns the correlation ID stored in the context, or "".
//
// Middleware is expected to set this value early in the request lifecycle so
// it can be attached to logs and echoed back to the client.
func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(correlationIDContextKey{}).(string)
	return cid
}

// SetCorrelationID stores a correlation ID into the context.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, cid)
}
