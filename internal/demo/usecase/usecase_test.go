package usecase

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shandysiswandi/structlog/internal/pkg/pkgerror"
)

func TestDivide(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want DivideResult
	}{
		{name: "integer quotient", a: "10", b: "2", want: DivideResult{A: "10", B: "2", Result: "5"}},
		{name: "terminating fraction", a: "1", b: "8", want: DivideResult{A: "1", B: "8", Result: "0.125"}},
		{name: "decimal operands", a: "7.5", b: "-0.25", want: DivideResult{A: "7.5", B: "-0.25", Result: "-30"}},
		{name: "exponent form", a: "1e3", b: "4", want: DivideResult{A: "1000", B: "4", Result: "250"}},
		{name: "dividend scale kept", a: "10.0", b: "2", want: DivideResult{A: "10.0", B: "2", Result: "5.0"}},
		{name: "scale grows when needed", a: "1.0", b: "8", want: DivideResult{A: "1.0", B: "8", Result: "0.125"}},
		{name: "zero dividend", a: "0.00", b: "3", want: DivideResult{A: "0.00", B: "3", Result: "0.00"}},
	}

	uc := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Divide(context.Background(), tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDivideByZeroPanics(t *testing.T) {
	assert.PanicsWithValue(t, "division by zero", func() {
		_, _ = New().Divide(context.Background(), "10", "0")
	})
}

func TestDivideNonTerminating(t *testing.T) {
	_, err := New().Divide(context.Background(), "10", "3")
	require.ErrorIs(t, err, ErrNonTerminating)

	var gerr *pkgerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, pkgerror.TypeServer, gerr.Type())
}

func TestDivideInvalidInput(t *testing.T) {
	inputs := [][2]string{
		{"ten", "2"}, {"10", "1/3"}, {"10", ""}, {"0x10", "2"}, {"1_000", "2"},
		{"Inf", "2"}, {"NaN", "2"}, {"1e", "2"}, {"--1", "2"}, {"1e+-2", "2"}, {".", "2"},
	}
	for _, in := range inputs {
		_, err := New().Divide(context.Background(), in[0], in[1])

		var gerr *pkgerror.Error
		require.ErrorAs(t, err, &gerr, "input %v", in)
		assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
	}
}

func TestDivideRejectsHugeExponent(t *testing.T) {
	for _, in := range []string{"1e-400000", "1e400000", "1e99999999999999999999"} {
		start := time.Now()
		_, err := New().Divide(context.Background(), in, "1")

		var gerr *pkgerror.Error
		require.ErrorAs(t, err, &gerr, "input %s", in)
		assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode())
		assert.Less(t, time.Since(start), time.Second, "input %s", in)
	}
}

func TestFault(t *testing.T) {
	err := New().Fault(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadLuck))
	assert.Equal(t, "bad luck, this is an error", err.Error())
}

func TestDecimalScale(t *testing.T) {
	tests := []struct {
		denom int64
		scale int
		ok    bool
	}{
		{1, 0, true},
		{2, 1, true},
		{8, 3, true},
		{20, 2, true},
		{125, 3, true},
		{3, 0, false},
		{12, 2, false},
	}

	for _, tt := range tests {
		scale, ok := decimalScale(big.NewInt(tt.denom))
		assert.Equal(t, tt.ok, ok, "denom %d", tt.denom)
		if tt.ok {
			assert.Equal(t, tt.scale, scale, "denom %d", tt.denom)
		}
	}
}
