package usecase

import (
	"errors"
	"math/big"
	"strconv"
	"strings"
)

const (
	maxDecimalLength = 128
	maxDecimalScale  = 1000
)

var (
	errDecimalSyntax = errors.New("not a decimal number")
	errDecimalRange  = errors.New("exponent out of range")
)

// decimal is unscaled * 10^-scale. The scale is kept as written, so 10.0 and
// 10 are distinct values that compare equal.
type decimal struct {
	unscaled *big.Int
	scale    int
}

// parseDecimal accepts [+-]digits[.digits][e[+-]digits]. Base prefixes,
// underscores, fractions and special values are rejected, and the resulting
// scale must stay within maxDecimalScale in either direction.
func parseDecimal(s string) (decimal, error) {
	if s == "" || len(s) > maxDecimalLength {
		return decimal{}, errDecimalSyntax
	}

	mantissa, exponent := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exponent = s[:i], s[i+1:]
		if exponent == "" {
			return decimal{}, errDecimalSyntax
		}
	}

	sign := ""
	if mantissa != "" && (mantissa[0] == '+' || mantissa[0] == '-') {
		sign, mantissa = mantissa[:1], mantissa[1:]
	}

	intPart, fracPart, _ := strings.Cut(mantissa, ".")
	if (intPart == "" && fracPart == "") || !allDigits(intPart) || !allDigits(fracPart) {
		return decimal{}, errDecimalSyntax
	}

	exp := 0
	if exponent != "" {
		digits := strings.TrimLeft(exponent, "+-")
		if len(exponent)-len(digits) > 1 || !allDigits(digits) || digits == "" {
			return decimal{}, errDecimalSyntax
		}
		e, err := strconv.Atoi(exponent)
		if err != nil || e > maxDecimalScale || e < -maxDecimalScale {
			return decimal{}, errDecimalRange
		}
		exp = e
	}

	scale := len(fracPart) - exp
	if scale > maxDecimalScale || scale < -maxDecimalScale {
		return decimal{}, errDecimalRange
	}

	u, ok := new(big.Int).SetString(sign+intPart+fracPart, 10)
	if !ok {
		return decimal{}, errDecimalSyntax
	}

	return decimal{unscaled: u, scale: scale}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// quo returns the exact quotient x / y using the smallest scale not below
// x.scale - y.scale that represents it. It reports false when the quotient has
// no terminating decimal expansion, and panics with "division by zero" when y
// is zero.
func quo(x, y decimal) (decimal, bool) {
	r := new(big.Rat).SetFrac(x.unscaled, y.unscaled)

	extra, ok := decimalScale(r.Denom())
	if !ok {
		return decimal{}, false
	}

	// Num * 10^extra is divisible by Denom once extra covers its 2s and 5s.
	m := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(extra)), nil)
	m.Mul(m, r.Num())
	m.Quo(m, r.Denom())

	return decimal{unscaled: m, scale: x.scale - y.scale + extra}, true
}

// decimalScale returns the number of fraction digits needed to print a
// rational with the given denominator exactly, and false when the expansion
// does not terminate (the denominator has a prime factor other than 2 and 5).
func decimalScale(denom *big.Int) (int, bool) {
	d := new(big.Int).Set(denom)

	twos := d.TrailingZeroBits()
	d.Rsh(d, twos)

	fives := 0
	five := big.NewInt(5)
	q, m := new(big.Int), new(big.Int)
	for {
		q.QuoRem(d, five, m)
		if m.Sign() != 0 {
			break
		}
		d.Set(q)
		fives++
	}

	return max(int(twos), fives), d.IsInt64() && d.Int64() == 1
}

// String renders d in plain notation, never with an exponent.
func (d decimal) String() string {
	if d.unscaled.Sign() == 0 && d.scale <= 0 {
		return "0"
	}

	digits := new(big.Int).Abs(d.unscaled).String()
	sign := ""
	if d.unscaled.Sign() < 0 {
		sign = "-"
	}

	if d.scale <= 0 {
		return sign + digits + strings.Repeat("0", -d.scale)
	}

	if len(digits) <= d.scale {
		digits = strings.Repeat("0", d.scale-len(digits)+1) + digits
	}
	point := len(digits) - d.scale

	return sign + digits[:point] + "." + digits[point:]
}
