package money

import (
	"fmt"
	"math/big"

	inf "gopkg.in/inf.v0"
)

// Amount represents a monetary amount whose scale is always equal to the
// scale of its currency, such as "USD 1.00" or "JPY 100".
// Every operation that would otherwise change the scale re-rounds the
// result to the currency scale before returning; operations without an
// explicit [RoundingMode] fail instead of rounding silently.
//
// The zero value corresponds to "XXX 0", where [XXX] indicates an unknown
// currency.
// Amount is immutable and safe for concurrent use by multiple goroutines.
// See also type [BigAmount].
type Amount struct {
	v BigAmount // invariant: v.Scale() == v.Curr().Scale()
}

// NewAmount returns an amount equal to unscaled / 10^scale in the given
// currency.
// If the scale is less than the scale of the currency, the result is
// zero-padded to the right.
//
// NewAmount returns an error if:
//   - the currency code is not valid;
//   - the scale is negative;
//   - the scale is greater than the scale of the currency and reducing it
//     would discard nonzero digits.
func NewAmount(curr string, unscaled int64, scale int) (Amount, error) {
	b, err := NewBigAmount(curr, unscaled, scale)
	if err != nil {
		return Amount{}, err
	}
	return b.Fixed(RoundUnnecessary)
}

// MustNewAmount is like [NewAmount] but panics if the amount cannot be
// constructed.
// It simplifies safe initialization of global variables holding amounts.
func MustNewAmount(curr string, unscaled int64, scale int) Amount {
	a, err := NewAmount(curr, unscaled, scale)
	if err != nil {
		panic(fmt.Sprintf("NewAmount(%q, %v, %v) failed: %v", curr, unscaled, scale, err))
	}
	return a
}

// NewAmountFromMinorUnits converts an integer, representing minor units
// of currency (e.g. cents, pennies, fens), to an amount.
// See also method [Amount.MinorUnits].
//
// NewAmountFromMinorUnits returns an error if the currency code is not valid.
func NewAmountFromMinorUnits(curr string, units int64) (Amount, error) {
	c, err := ParseCurr(curr)
	if err != nil {
		return Amount{}, fmt.Errorf("parsing currency: %w", err)
	}
	d := inf.NewDec(units, inf.Scale(c.Scale()))
	return Amount{v: newBigAmountUnsafe(c, d)}, nil
}

// ParseAmount converts currency and decimal strings to an amount.
// If the scale of the parsed decimal is less than the scale of the
// currency, the result is zero-padded to the right.
// See also constructors [ParseCurr] and [ParseBigAmount].
//
// ParseAmount returns an error if reducing the parsed decimal to the
// currency scale would discard nonzero digits.
func ParseAmount(curr, amount string) (Amount, error) {
	b, err := ParseBigAmount(curr, amount)
	if err != nil {
		return Amount{}, err
	}
	return b.Fixed(RoundUnnecessary)
}

// MustParseAmount is like [ParseAmount] but panics if any of the strings
// cannot be parsed.
// It simplifies safe initialization of global variables holding amounts.
func MustParseAmount(curr, amount string) Amount {
	a, err := ParseAmount(curr, amount)
	if err != nil {
		panic(fmt.Sprintf("ParseAmount(%q, %q) failed: %v", curr, amount, err))
	}
	return a
}

// BigAmount returns the amount as a [BigAmount], carrying the currency
// scale.
// See also method [BigAmount.Fixed].
func (a Amount) BigAmount() BigAmount {
	return a.v
}

// Curr returns the currency of the amount.
func (a Amount) Curr() Currency {
	return a.v.Curr()
}

// Dec returns a copy of the decimal value of the amount.
func (a Amount) Dec() *inf.Dec {
	return a.v.Dec()
}

// Unscaled returns a copy of the unscaled coefficient of the amount,
// such that the amount equals unscaled / 10^scale.
// See also method [Amount.Scale].
func (a Amount) Unscaled() *big.Int {
	return a.v.Unscaled()
}

// Scale returns the number of digits after the decimal point.
// It is always equal to the scale of the currency.
func (a Amount) Scale() int {
	return a.v.Scale()
}

// MinorUnits returns the amount expressed in minor units of its currency
// (e.g. cents, pennies, fens).
// If the result cannot be represented as an int64, then false is returned.
// See also constructor [NewAmountFromMinorUnits].
func (a Amount) MinorUnits() (units int64, ok bool) {
	u := a.v.dec().UnscaledBig()
	if !u.IsInt64() {
		return 0, false
	}
	return u.Int64(), true
}

// Sign returns:
//
//	-1 if a < 0
//	 0 if a = 0
//	+1 if a > 0
func (a Amount) Sign() int {
	return a.v.Sign()
}

// IsZero returns:
//
//	true  if a = 0
//	false otherwise
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// IsPos returns:
//
//	true  if a > 0
//	false otherwise
func (a Amount) IsPos() bool {
	return a.v.IsPos()
}

// IsNeg returns:
//
//	true  if a < 0
//	false otherwise
func (a Amount) IsNeg() bool {
	return a.v.IsNeg()
}

// Abs returns the absolute value of the amount.
func (a Amount) Abs() Amount {
	return Amount{v: a.v.Abs()}
}

// Neg returns an amount with the opposite sign.
func (a Amount) Neg() Amount {
	return Amount{v: a.v.Neg()}
}

// SameCurr returns true if amounts are denominated in the same currency.
// See also method [Amount.Curr].
func (a Amount) SameCurr(b Amount) bool {
	return a.v.SameCurr(b.v)
}

// Add returns the sum of amounts a and b.
// Both operands carry the currency scale, so addition is always exact.
//
// Add returns an error if the amounts are denominated in different
// currencies.
func (a Amount) Add(b Amount) (Amount, error) {
	c, err := a.v.Add(b.v)
	if err != nil {
		return Amount{}, err
	}
	return Amount{v: c}, nil
}

// Sub returns the difference between amounts a and b.
// Both operands carry the currency scale, so subtraction is always exact.
//
// Sub returns an error if the amounts are denominated in different
// currencies.
func (a Amount) Sub(b Amount) (Amount, error) {
	c, err := a.v.Sub(b.v)
	if err != nil {
		return Amount{}, err
	}
	return Amount{v: c}, nil
}

// Mul returns the product of amount a and factor e at the currency scale.
// Mul returns an error if the exact product has nonzero digits beyond the
// currency scale; use [Amount.MulRound] to round such products.
func (a Amount) Mul(e *inf.Dec) (Amount, error) {
	return a.mul(e, RoundUnnecessary)
}

// MulRound returns the product of amount a and factor e, rounded to the
// currency scale according to r.
func (a Amount) MulRound(e *inf.Dec, r RoundingMode) (Amount, error) {
	return a.mul(e, r)
}

func (a Amount) mul(e *inf.Dec, r RoundingMode) (Amount, error) {
	if e == nil {
		e = new(inf.Dec)
	}
	d, err := roundDec(new(inf.Dec).Mul(a.v.dec(), e), a.Curr().Scale(), r)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v * %v]: %w", a, e, err)
	}
	return Amount{v: newBigAmountUnsafe(a.Curr(), d)}, nil
}

// Quo returns the quotient of amount a and divisor e at the currency scale.
// Quo returns an error if the exact quotient has nonzero digits beyond the
// currency scale; use [Amount.QuoRound] to round such quotients.
func (a Amount) Quo(e *inf.Dec) (Amount, error) {
	return a.quo(e, RoundUnnecessary)
}

// QuoRound returns the quotient of amount a and divisor e, rounded to the
// currency scale according to r.
//
// QuoRound returns an error if the divisor is zero.
func (a Amount) QuoRound(e *inf.Dec, r RoundingMode) (Amount, error) {
	return a.quo(e, r)
}

func (a Amount) quo(e *inf.Dec, r RoundingMode) (Amount, error) {
	if e == nil {
		e = new(inf.Dec)
	}
	d, err := quoDec(a.v.dec(), e, a.Curr().Scale(), r)
	if err != nil {
		return Amount{}, fmt.Errorf("computing [%v / %v]: %w", a, e, err)
	}
	return Amount{v: newBigAmountUnsafe(a.Curr(), d)}, nil
}

// ConvTo returns the amount converted to the quote currency using the
// given exchange rate, rounded to the scale of the quote currency
// according to r.
// See also method [ExchangeRate.ConvRound].
//
// ConvTo returns an error if:
//   - the rate is nil, zero, or negative;
//   - the quote currency equals the currency of the amount but the rate
//     is not 1;
//   - r is [RoundUnnecessary] and rounding would discard nonzero digits.
func (a Amount) ConvTo(quote Currency, rate *inf.Dec, r RoundingMode) (Amount, error) {
	b, err := a.v.ConvTo(quote, rate)
	if err != nil {
		return Amount{}, err
	}
	return b.Fixed(r)
}

// Split returns a slice of amounts that sum up to the original amount,
// ensuring the parts are as equal as possible.
// If the original amount cannot be divided equally among the specified
// number of parts, the remainder is distributed, one minor unit at a time,
// among the first parts of the slice.
//
// Split returns an error if the number of parts is not a positive integer.
func (a Amount) Split(parts int) ([]Amount, error) {
	r, err := a.split(parts)
	if err != nil {
		return nil, fmt.Errorf("splitting %v into %v parts: %w", a, parts, err)
	}
	return r, nil
}

func (a Amount) split(parts int) ([]Amount, error) {
	if parts < 1 {
		return nil, fmt.Errorf("number of parts must be positive")
	}
	par := inf.NewDec(int64(parts), 0)

	// Quotient, truncated towards zero so the remainder keeps the sign
	// of the original amount
	q, err := a.quo(par, RoundDown)
	if err != nil {
		return nil, err
	}

	// Remainder
	prod := new(inf.Dec).Mul(q.v.dec(), par)
	rem := new(inf.Dec).Sub(a.v.dec(), prod)
	ulp := inf.NewDec(int64(rem.Sign()), inf.Scale(a.Scale()))

	res := make([]Amount, parts)
	for i := range res {
		res[i] = q
		// Remainder distribution
		if rem.Sign() != 0 {
			rem.Sub(rem, ulp)
			res[i] = Amount{v: newBigAmountUnsafe(a.Curr(), new(inf.Dec).Add(q.v.dec(), ulp))}
		}
	}
	return res, nil
}

// Cmp compares amounts and returns:
//
//	-1 if a < b
//	 0 if a = b
//	+1 if a > b
//
// Cmp returns an error if the amounts are denominated in different
// currencies.
func (a Amount) Cmp(b Amount) (int, error) {
	return a.v.Cmp(b.v)
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the amount, such as "USD 12.34".
// See also method [Amount.Format].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (a Amount) String() string {
	return a.v.String()
}

// Format implements the [fmt.Formatter] interface.
// It supports the same verbs and flags as [BigAmount.Format].
//
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (a Amount) Format(state fmt.State, verb rune) {
	a.v.Format(state, verb)
}
