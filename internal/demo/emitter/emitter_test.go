package emitter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/structlog/internal/pkg/pkglog"
	"github.com/shandysiswandi/structlog/internal/pkg/pkgmetrics"
)

type fixedID int64

func (f fixedID) Generate() int64 { return int64(f) }

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines(t *testing.T) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(b.buf.Bytes()))
	for sc.Scan() {
		var l map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &l))
		out = append(out, l)
	}
	return out
}

func TestNewDefaults(t *testing.T) {
	e := New(0, nil)
	assert.Equal(t, DefaultInterval, e.interval)
	assert.Zero(t, e.id)

	e = New(time.Second, fixedID(7))
	assert.Equal(t, time.Second, e.interval)
	assert.Equal(t, int64(7), e.id)
}

func TestRunEmitsIncreasingStepsUntilCanceled(t *testing.T) {
	buf := &syncBuffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(pkglog.NewHandler(pkglog.Options{Writer: buf})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	before := testutil.ToFloat64(pkgmetrics.EmitterStepsTotal)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(5*time.Millisecond, fixedID(42)).Run(ctx) }()

	require.Eventually(t, func() bool { return len(buf.lines(t)) >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("emitter did not stop after cancel")
	}

	lines := buf.lines(t)
	for i, l := range lines {
		assert.Equal(t, "Logging step", l["msg"])
		assert.Equal(t, float64(i), l["step"])
		assert.Equal(t, float64(42), l["emitter.id"])
		for k := range l {
			assert.False(t, strings.HasPrefix(k, "req."), "unexpected request attribute %q", k)
		}
	}
	assert.Equal(t, float64(len(lines)), testutil.ToFloat64(pkgmetrics.EmitterStepsTotal)-before)
}
