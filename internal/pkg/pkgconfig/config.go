package pkgconfig

import (
	"io"
	"time"
)

// Config is the read-only view of the service configuration.
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetString(key string) string
	GetDuration(key string) time.Duration
	GetArray(key string) []string
}
