package money

import (
	"errors"
	"fmt"

	inf "gopkg.in/inf.v0"
)

var (
	errCurrencyMismatch    = errors.New("currency mismatch")
	errUnnecessaryRounding = errors.New("rounding necessary")
	errDivisionByZero      = errors.New("division by zero")
	errScaleRange          = errors.New("scale out of range")
)

// Exported sentinels allow callers to branch on the failure class
// with [errors.Is].
var (
	// ErrCurrencyMismatch is returned by binary arithmetic and comparison
	// operations when the operands are denominated in different currencies.
	ErrCurrencyMismatch = errCurrencyMismatch

	// ErrUnnecessaryRounding is returned when an operation was requested
	// with [RoundUnnecessary] but producing the result would discard
	// nonzero digits.
	ErrUnnecessaryRounding = errUnnecessaryRounding

	// ErrDivisionByZero is returned when the divisor of a quotient
	// operation is zero.
	ErrDivisionByZero = errDivisionByZero

	// ErrInvalidCurrency is returned when a string does not represent
	// a currency known to the registry.
	ErrInvalidCurrency = errInvalidCurrency
)

// RoundingMode determines how a value is adjusted when an operation cannot
// produce an exact result at the target scale.
// The zero value is [RoundUnnecessary], which refuses to discard nonzero
// digits, so operations that omit an explicit mode fail instead of
// rounding silently.
type RoundingMode uint8

const (
	// RoundUnnecessary asserts that no rounding is needed.
	// Operations fail with [ErrUnnecessaryRounding] if it is.
	RoundUnnecessary RoundingMode = iota

	// RoundUp rounds away from zero.
	RoundUp

	// RoundDown rounds towards zero.
	RoundDown

	// RoundCeiling rounds towards positive infinity.
	RoundCeiling

	// RoundFloor rounds towards negative infinity.
	RoundFloor

	// RoundHalfUp rounds to the nearest neighbor, ties away from zero.
	RoundHalfUp

	// RoundHalfDown rounds to the nearest neighbor, ties towards zero.
	RoundHalfDown

	// RoundHalfEven rounds to the nearest neighbor, ties to the even
	// neighbor (banker's rounding).
	RoundHalfEven
)

// String implements the [fmt.Stringer] interface.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r RoundingMode) String() string {
	switch r {
	case RoundUnnecessary:
		return "UNNECESSARY"
	case RoundUp:
		return "UP"
	case RoundDown:
		return "DOWN"
	case RoundCeiling:
		return "CEILING"
	case RoundFloor:
		return "FLOOR"
	case RoundHalfUp:
		return "HALF_UP"
	case RoundHalfDown:
		return "HALF_DOWN"
	case RoundHalfEven:
		return "HALF_EVEN"
	default:
		return fmt.Sprintf("RoundingMode(%d)", uint8(r))
	}
}

// rounder maps the mode onto the corresponding [inf.Rounder].
// inf.RoundExact yields a nil result when rounding would discard digits,
// which is how RoundUnnecessary failures are detected.
func (r RoundingMode) rounder() inf.Rounder {
	switch r {
	case RoundUp:
		return inf.RoundUp
	case RoundDown:
		return inf.RoundDown
	case RoundCeiling:
		return inf.RoundCeil
	case RoundFloor:
		return inf.RoundFloor
	case RoundHalfUp:
		return inf.RoundHalfUp
	case RoundHalfDown:
		return inf.RoundHalfDown
	case RoundHalfEven:
		return inf.RoundHalfEven
	default:
		return inf.RoundExact
	}
}

// roundDec re-expresses d at the given scale, rounding according to r.
func roundDec(d *inf.Dec, scale int, r RoundingMode) (*inf.Dec, error) {
	z := new(inf.Dec).Round(d, inf.Scale(scale), r.rounder())
	if z == nil {
		return nil, errUnnecessaryRounding
	}
	return z, nil
}

// quoDec divides x by y at the given scale, rounding according to r.
func quoDec(x, y *inf.Dec, scale int, r RoundingMode) (*inf.Dec, error) {
	if y.Sign() == 0 {
		return nil, errDivisionByZero
	}
	z := new(inf.Dec).QuoRound(x, y, inf.Scale(scale), r.rounder())
	if z == nil {
		return nil, errUnnecessaryRounding
	}
	return z, nil
}
