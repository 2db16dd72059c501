package money

import (
	"fmt"
	"math/big"

	inf "gopkg.in/inf.v0"
)

// BigAmount represents a monetary amount of arbitrary precision.
// It is a combination of an ISO 4217 currency and a signed decimal value
// stored as an unscaled [big.Int] coefficient and a non-negative scale:
//
//	amount = unscaled * 10^(-scale)
//
// Unlike [Amount], the scale of a BigAmount is free to differ from the
// scale of its currency, so intermediate results of financial calculations
// can be carried exactly and rounded once at the end.
//
// The zero value corresponds to "XXX 0", where [XXX] indicates an unknown
// currency.
// BigAmount is immutable and safe for concurrent use by multiple goroutines.
type BigAmount struct {
	curr  Currency
	value *inf.Dec // treated as read-only once stored
}

// dec returns the underlying decimal, substituting zero for the nil value
// carried by a zero BigAmount.
// The result must not be mutated.
func (a BigAmount) dec() *inf.Dec {
	if a.value == nil {
		return new(inf.Dec)
	}
	return a.value
}

// newBigAmountUnsafe wraps a decimal without copying it.
// The caller must hand over ownership of d.
func newBigAmountUnsafe(c Currency, d *inf.Dec) BigAmount {
	if d.Scale() < 0 {
		// A negative scale denotes trailing zeros before the decimal
		// point; padding them out is always exact.
		d = new(inf.Dec).Round(d, 0, inf.RoundExact)
	}
	return BigAmount{curr: c, value: d}
}

// NewBigAmount returns an amount equal to unscaled / 10^scale in the given
// currency.
//
// NewBigAmount returns an error if the currency code is not valid or if
// the scale is negative.
func NewBigAmount(curr string, unscaled int64, scale int) (BigAmount, error) {
	c, err := ParseCurr(curr)
	if err != nil {
		return BigAmount{}, fmt.Errorf("parsing currency: %w", err)
	}
	if scale < 0 {
		return BigAmount{}, fmt.Errorf("converting coefficient: %w", errScaleRange)
	}
	return newBigAmountUnsafe(c, inf.NewDec(unscaled, inf.Scale(scale))), nil
}

// MustNewBigAmount is like [NewBigAmount] but panics if the amount cannot
// be constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewBigAmount(curr string, unscaled int64, scale int) BigAmount {
	a, err := NewBigAmount(curr, unscaled, scale)
	if err != nil {
		panic(fmt.Sprintf("NewBigAmount(%q, %v, %v) failed: %v", curr, unscaled, scale, err))
	}
	return a
}

// NewBigAmountFromBigInt returns an amount equal to unscaled / 10^scale.
// The unscaled coefficient is copied, so later mutation of the argument
// does not affect the returned amount.
//
// NewBigAmountFromBigInt returns an error if the currency code is not
// valid, the coefficient is nil, or the scale is negative.
func NewBigAmountFromBigInt(curr string, unscaled *big.Int, scale int) (BigAmount, error) {
	c, err := ParseCurr(curr)
	if err != nil {
		return BigAmount{}, fmt.Errorf("parsing currency: %w", err)
	}
	if unscaled == nil {
		return BigAmount{}, fmt.Errorf("converting coefficient: nil coefficient")
	}
	if scale < 0 {
		return BigAmount{}, fmt.Errorf("converting coefficient: %w", errScaleRange)
	}
	u := new(big.Int).Set(unscaled)
	return newBigAmountUnsafe(c, inf.NewDecBig(u, inf.Scale(scale))), nil
}

// NewBigAmountFromDec returns an amount with the given currency and value.
// The decimal is copied, so later mutation of the argument does not affect
// the returned amount.
// See also method [BigAmount.Dec].
func NewBigAmountFromDec(curr Currency, d *inf.Dec) BigAmount {
	if d == nil {
		return newBigAmountUnsafe(curr, new(inf.Dec))
	}
	return newBigAmountUnsafe(curr, new(inf.Dec).Set(d))
}

// ParseBigAmount converts currency and decimal strings to an amount.
// The amount string must be a plain decimal number, such as "1.23" or
// "-0.004"; the scale of the result equals the number of digits after
// the decimal point.
// See also constructor [ParseCurr].
func ParseBigAmount(curr, amount string) (BigAmount, error) {
	c, err := ParseCurr(curr)
	if err != nil {
		return BigAmount{}, fmt.Errorf("parsing currency: %w", err)
	}
	d, ok := new(inf.Dec).SetString(amount)
	if !ok {
		return BigAmount{}, fmt.Errorf("parsing amount: invalid decimal %q", amount)
	}
	return newBigAmountUnsafe(c, d), nil
}

// MustParseBigAmount is like [ParseBigAmount] but panics if any of the
// strings cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseBigAmount(curr, amount string) BigAmount {
	a, err := ParseBigAmount(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("ParseBigAmount(%q, %q) failed: %v", curr, amount, err))
	}
	return a
}

// Curr returns the currency of the amount.
func (a BigAmount) Curr() Currency {
	return a.curr
}

// Dec returns a copy of the decimal value of the amount.
func (a BigAmount) Dec() *inf.Dec {
	return new(inf.Dec).Set(a.dec())
}

// Unscaled returns a copy of the unscaled coefficient of the amount,
// such that the amount equals unscaled / 10^scale.
// See also method [BigAmount.Scale].
func (a BigAmount) Unscaled() *big.Int {
	return new(big.Int).Set(a.dec().UnscaledBig())
}

// Scale returns the number of digits after the decimal point.
func (a BigAmount) Scale() int {
	return int(a.dec().Scale())
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a BigAmount) Sign() int {
	return a.dec().Sign()
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a BigAmount) IsZero() bool {
	return a.Sign() == 0
}

// IsPos returns:
//
//	true  if a > 0
//	false otherwise
func (a BigAmount) IsPos() bool {
	return a.Sign() > 0
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a BigAmount) IsNeg() bool {
	return a.Sign() < 0
}

// Abs returns the absolute value of the amount.
func (a BigAmount) Abs() BigAmount {
	return newBigAmountUnsafe(a.curr, new(inf.Dec).Abs(a.dec()))
}

// Neg returns an amount with the opposite sign.
func (a BigAmount) Neg() BigAmount {
	return newBigAmountUnsafe(a.curr, new(inf.Dec).Neg(a.dec()))
}

// SameCurr returns true if amounts are denominated in the same currency.
// See also method [BigAmount.Curr].
func (a BigAmount) SameCurr(b BigAmount) bool {
	return a.curr == b.curr
}

// SameScale returns true if amounts have the same scale.
// See also method [BigAmount.Scale].
func (a BigAmount) SameScale(b BigAmount) bool {
	return a.Scale() == b.Scale()
}

// SameScaleAsCurr returns true if the scale of the amount is equal to the
// scale of its currency.
// See also methods [BigAmount.Scale] and [Currency.Scale].
func (a BigAmount) SameScaleAsCurr() bool {
	return a.Scale() == a.curr.Scale()
}

// Add returns the exact sum of amounts a and b.
// The scale of the result is the greater of the scales of the operands,
// so addition never rounds.
//
// Add returns an error if the amounts are denominated in different
// currencies.
func (a BigAmount) Add(b BigAmount) (BigAmount, error) {
	if !a.SameCurr(b) {
		return BigAmount{}, fmt.Errorf("computing [%v + %v]: %w", a, b, errCurrencyMismatch)
	}
	return newBigAmountUnsafe(a.curr, new(inf.Dec).Add(a.dec(), b.dec())), nil
}

// Sub returns the exact difference between amounts a and b.
// The scale of the result is the greater of the scales of the operands,
// so subtraction never rounds.
//
// Sub returns an error if the amounts are denominated in different
// currencies.
func (a BigAmount) Sub(b BigAmount) (BigAmount, error) {
	if !a.SameCurr(b) {
		return BigAmount{}, fmt.Errorf("computing [%v - %v]: %w", a, b, errCurrencyMismatch)
	}
	return newBigAmountUnsafe(a.curr, new(inf.Dec).Sub(a.dec(), b.dec())), nil
}

// Mul returns the exact product of amount a and factor e.
// The scale of the result is the sum of the scales of the operands.
// See also method [BigAmount.MulRound].
func (a BigAmount) Mul(e *inf.Dec) BigAmount {
	if e == nil {
		e = new(inf.Dec)
	}
	return newBigAmountUnsafe(a.curr, new(inf.Dec).Mul(a.dec(), e))
}

// MulRound returns the product of amount a and factor e, re-expressed at
// the scale of a, rounding according to r.
//
// MulRound returns an error if r is [RoundUnnecessary] and the exact
// product has nonzero digits beyond the scale of a.
func (a BigAmount) MulRound(e *inf.Dec, r RoundingMode) (BigAmount, error) {
	if e == nil {
		e = new(inf.Dec)
	}
	d, err := roundDec(new(inf.Dec).Mul(a.dec(), e), a.Scale(), r)
	if err != nil {
		return BigAmount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return newBigAmountUnsafe(a.curr, d), nil
}

// Quo returns the quotient of amount a and divisor e at the scale of a,
// rounding according to r.
// Exact decimal division is frequently non-terminating, so the rounding
// mode is always required.
//
// Quo returns an error if:
//   - the divisor is zero;
//   - r is [RoundUnnecessary] and the exact quotient has nonzero digits
//     beyond the scale of a.
func (a BigAmount) Quo(e *inf.Dec, r RoundingMode) (BigAmount, error) {
	if e == nil {
		e = new(inf.Dec)
	}
	d, err := quoDec(a.dec(), e, a.Scale(), r)
	if err != nil {
		return BigAmount{}, fmt.Errorf("computing [%v / %v]: %w", a, e, err)
	}
	return newBigAmountUnsafe(a.curr, d), nil
}

// Rescale returns the amount re-expressed at the given scale, rounding
// according to r if digits must be discarded.
//
// Rescale returns an error if:
//   - the scale is negative;
//   - r is [RoundUnnecessary] and rounding would discard nonzero digits.
func (a BigAmount) Rescale(scale int, r RoundingMode) (BigAmount, error) {
	if scale < 0 {
		return BigAmount{}, fmt.Errorf("rescaling %v: %w", a, errScaleRange)
	}
	d, err := roundDec(a.dec(), scale, r)
	if err != nil {
		return BigAmount{}, fmt.Errorf("rescaling %v: %w", a, err)
	}
	return newBigAmountUnsafe(a.curr, d), nil
}

// RescaleToCurr returns the amount re-expressed at the scale of its
// currency, rounding according to r if digits must be discarded.
// It is shorthand for Rescale(a.Curr().Scale(), r).
func (a BigAmount) RescaleToCurr(r RoundingMode) (BigAmount, error) {
	return a.Rescale(a.curr.Scale(), r)
}

// ConvTo returns the amount exactly converted to the quote currency using
// the given exchange rate.
// The scale of the result is the sum of the scales of the amount and the
// rate, so the conversion itself never rounds; use [BigAmount.RescaleToCurr]
// or [BigAmount.Fixed] on the result to round to the quote currency scale.
//
// ConvTo returns an error if:
//   - the rate is nil, zero, or negative;
//   - the quote currency equals the currency of the amount but the rate
//     is not 1.
func (a BigAmount) ConvTo(quote Currency, rate *inf.Dec) (BigAmount, error) {
	if rate == nil || rate.Sign() <= 0 {
		return BigAmount{}, fmt.Errorf("converting %v to %v: %w", a, quote, errInvalidRate)
	}
	if quote == a.curr && rate.Cmp(oneDec) != 0 {
		return BigAmount{}, fmt.Errorf("converting %v to %v: %w", a, quote, errIdentityRate)
	}
	return newBigAmountUnsafe(quote, new(inf.Dec).Mul(a.dec(), rate)), nil
}

// Fixed returns the amount re-expressed at the scale of its currency as
// an [Amount], rounding according to r if digits must be discarded.
// See also method [Amount.BigAmount].
func (a BigAmount) Fixed(r RoundingMode) (Amount, error) {
	b, err := a.RescaleToCurr(r)
	if err != nil {
		return Amount{}, err
	}
	return Amount{v: b}, nil
}

// Cmp compares amounts numerically after aligning their scales and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// Scale alignment pads the smaller-scale operand with trailing zeros and
// is never lossy.
//
// Cmp returns an error if the amounts are denominated in different
// currencies.
func (a BigAmount) Cmp(b BigAmount) (int, error) {
	if !a.SameCurr(b) {
		return 0, fmt.Errorf("comparing [%v] and [%v]: %w", a, b, errCurrencyMismatch)
	}
	return a.dec().Cmp(b.dec()), nil
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the amount, such as "USD 12.34".
// See also methods [Currency.String] and [BigAmount.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a BigAmount) String() string {
	return a.curr.Code() + " " + a.dec().String()
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example     | Description                |
//	| ------ | ----------- | -------------------------- |
//	| %s, %v | USD 5.678   | Currency and amount        |
//	| %q     | "USD 5.678" | Quoted currency and amount |
//	| %f     | 5.678       | Amount                     |
//	| %c     | USD         | Currency                   |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a BigAmount) Format(state fmt.State, verb rune) {
	var text string
	switch verb {
	case 's', 'S', 'v', 'V':
		text = a.String()
	case 'q', 'Q':
		text = "\"" + a.String() + "\""
	case 'f', 'F':
		text = a.dec().String()
	case 'c', 'C':
		text = a.curr.Code()
	default:
		fmt.Fprintf(state, "%%!%c(money.BigAmount=%s)", verb, a.String())
		return
	}
	writePadded(state, text)
}

// writePadded writes text applying the width and '-' flag of the state.
func writePadded(state fmt.State, text string) {
	pad := 0
	if w, ok := state.Width(); ok && w > len(text) {
		pad = w - len(text)
	}
	//nolint:errcheck
	switch {
	case pad == 0:
		state.Write([]byte(text))
	case state.Flag('-'):
		state.Write([]byte(text))
		state.Write(spaces(pad))
	default:
		state.Write(spaces(pad))
		state.Write([]byte(text))
	}
}

var oneDec = inf.NewDec(1, 0)
