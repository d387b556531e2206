package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/structlog/internal/pkg/pkgerror"
)

var (
	// ErrBadLuck is the failure produced on purpose by Fault.
	ErrBadLuck = errors.New("bad luck, this is an error")

	// ErrNonTerminating is returned when a quotient has no exact decimal form.
	ErrNonTerminating = errors.New("non-terminating decimal expansion; no exact representable decimal result")
)

// DivideResult holds the operands and the exact quotient in plain decimal notation.
type DivideResult struct {
	A      string
	B      string
	Result string
}

type Usecase struct{}

func New() *Usecase {
	return &Usecase{}
}

// Fault always fails with a server error wrapping ErrBadLuck.
func (u *Usecase) Fault(ctx context.Context) error {
	slog.InfoContext(ctx, "I'm about to throw an error")

	return pkgerror.NewServer(ErrBadLuck)
}

// Divide computes a / b exactly. Operands that are not decimal numbers are
// rejected as invalid input. A zero divisor panics with "division by zero",
// like any other arithmetic fault.
func (u *Usecase) Divide(ctx context.Context, a, b string) (DivideResult, error) {
	x, err := parseDecimal(a)
	if err != nil {
		return DivideResult{}, pkgerror.NewInvalidInput(fmt.Errorf("a: %q: %w", a, err))
	}
	y, err := parseDecimal(b)
	if err != nil {
		return DivideResult{}, pkgerror.NewInvalidInput(fmt.Errorf("b: %q: %w", b, err))
	}

	q, ok := quo(x, y)
	if !ok {
		return DivideResult{}, pkgerror.NewServer(ErrNonTerminating)
	}

	res := DivideResult{A: x.String(), B: y.String(), Result: q.String()}

	slog.InfoContext(ctx, "Divide op", "a", res.A, "b", res.B)

	return res, nil
}
