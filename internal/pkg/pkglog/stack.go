package pkglog

import (
	"errors"
	"fmt"
	"runtime/debug"
)

type stackTracer interface {
	StackTrace() string
}

// StackTrace returns the stack recorded by err (or any error it wraps) when
// it has one, and the stack of the calling goroutine otherwise.
func StackTrace(err error) string {
	var st stackTracer
	if errors.As(err, &st) {
		if trace := st.StackTrace(); trace != "" {
			return trace
		}
	}
	return string(debug.Stack())
}

// PanicMessage renders a recovered panic value as an error message.
func PanicMessage(rvr any) string {
	if err, ok := rvr.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(rvr)
}
