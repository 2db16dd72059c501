package money

import (
	"errors"
	"fmt"

	inf "gopkg.in/inf.v0"
)

var (
	errInvalidRate  = errors.New("exchange rate must be positive")
	errIdentityRate = errors.New("exchange rate between identical currencies must be 1")
)

// ExchangeRate represents a unidirectional exchange rate between two
// currencies.
// The zero value corresponds to an exchange rate of "XXX/XXX 0", where
// [XXX] indicates an unknown currency.
// ExchangeRate is immutable and safe for concurrent use by multiple
// goroutines.
type ExchangeRate struct {
	base  Currency // currency being exchanged
	quote Currency // currency being obtained in exchange for the base currency
	value *inf.Dec // units of quote currency per unit of the base currency
}

func (r ExchangeRate) dec() *inf.Dec {
	if r.value == nil {
		return new(inf.Dec)
	}
	return r.value
}

// NewExchRate returns a new exchange rate between the base and quote
// currencies.
// The rate is copied, so later mutation of the argument does not affect
// the returned exchange rate.
//
// NewExchRate returns an error if:
//   - the rate is nil, zero, or negative;
//   - the base and quote currencies are the same, but the rate is not
//     equal to 1.
func NewExchRate(base, quote Currency, rate *inf.Dec) (ExchangeRate, error) {
	if rate == nil || rate.Sign() <= 0 {
		return ExchangeRate{}, errInvalidRate
	}
	if base == quote && rate.Cmp(oneDec) != 0 {
		return ExchangeRate{}, errIdentityRate
	}
	return ExchangeRate{base: base, quote: quote, value: new(inf.Dec).Set(rate)}, nil
}

// ParseExchRate converts currency and decimal strings to an exchange rate.
// See also constructors [ParseCurr] and [NewExchRate].
func ParseExchRate(base, quote, rate string) (ExchangeRate, error) {
	b, err := ParseCurr(base)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("parsing base currency: %w", err)
	}
	q, err := ParseCurr(quote)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("parsing quote currency: %w", err)
	}
	d, ok := new(inf.Dec).SetString(rate)
	if !ok {
		return ExchangeRate{}, fmt.Errorf("parsing rate: invalid decimal %q", rate)
	}
	r, err := NewExchRate(b, q, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("constructing rate: %w", err)
	}
	return r, nil
}

// MustParseExchRate is like [ParseExchRate] but panics if any of the
// strings cannot be parsed.
// It simplifies safe initialization of global variables holding exchange
// rates.
func MustParseExchRate(base, quote, rate string) ExchangeRate {
	r, err := ParseExchRate(base, quote, rate)
	if err != nil {
		panic(fmt.Sprintf("ParseExchRate(%q, %q, %q) failed: %v", base, quote, rate, err))
	}
	return r
}

// Base returns the currency being exchanged.
func (r ExchangeRate) Base() Currency {
	return r.base
}

// Quote returns the currency being obtained in exchange for the base
// currency.
func (r ExchangeRate) Quote() Currency {
	return r.quote
}

// Dec returns a copy of the decimal value of the exchange rate.
func (r ExchangeRate) Dec() *inf.Dec {
	return new(inf.Dec).Set(r.dec())
}

// IsZero returns:
//
//	true  if r = 0
//	false otherwise
//
// Only the zero value of ExchangeRate has a zero rate.
func (r ExchangeRate) IsZero() bool {
	return r.dec().Sign() == 0
}

// IsOne returns:
//
//	true  if r = 1
//	false otherwise
func (r ExchangeRate) IsOne() bool {
	return r.dec().Cmp(oneDec) == 0
}

// SameCurr returns true if exchange rates are denominated in the same base
// and quote currencies.
// See also methods [ExchangeRate.Base] and [ExchangeRate.Quote].
func (r ExchangeRate) SameCurr(q ExchangeRate) bool {
	return r.base == q.base && r.quote == q.quote
}

// CanConv returns true if [ExchangeRate.Conv] can be used to convert the
// given amount.
func (r ExchangeRate) CanConv(a BigAmount) bool {
	return a.Curr() == r.base &&
		r.base != XXX &&
		r.quote != XXX &&
		r.dec().Sign() > 0
}

// Conv returns the amount exactly converted from the base currency to the
// quote currency.
// The scale of the result is the sum of the scales of the amount and the
// rate; see [ExchangeRate.ConvRound] for results at the quote currency
// scale.
//
// Conv returns an error if the currency of the given amount does not match
// the base currency of the exchange rate.
func (r ExchangeRate) Conv(a BigAmount) (BigAmount, error) {
	if !r.CanConv(a) {
		return BigAmount{}, fmt.Errorf("converting %v by %v: %w", a, r, errCurrencyMismatch)
	}
	return newBigAmountUnsafe(r.quote, new(inf.Dec).Mul(a.dec(), r.dec())), nil
}

// ConvRound returns the amount converted from the base currency to the
// quote currency, rounded to the scale of the quote currency according
// to mode.
//
// ConvRound returns an error if:
//   - the currency of the given amount does not match the base currency
//     of the exchange rate;
//   - mode is [RoundUnnecessary] and rounding would discard nonzero digits.
func (r ExchangeRate) ConvRound(a Amount, mode RoundingMode) (Amount, error) {
	b, err := r.Conv(a.BigAmount())
	if err != nil {
		return Amount{}, err
	}
	return b.Fixed(mode)
}

// Inv returns the inverse of the exchange rate at the given scale,
// rounding according to mode.
// The inverse of a rate is usually a non-terminating decimal, so the
// scale and the rounding mode must be chosen explicitly.
//
// Inv returns an error if:
//   - the rate is zero (the zero value of ExchangeRate);
//   - the scale is negative;
//   - mode is [RoundUnnecessary] and rounding would discard nonzero digits.
func (r ExchangeRate) Inv(scale int, mode RoundingMode) (ExchangeRate, error) {
	if scale < 0 {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, errScaleRange)
	}
	d, err := quoDec(oneDec, r.dec(), scale, mode)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, err)
	}
	q, err := NewExchRate(r.quote, r.base, d)
	if err != nil {
		return ExchangeRate{}, fmt.Errorf("inverting %v: %w", r, err)
	}
	return q, nil
}

// String implements the [fmt.Stringer] interface and returns a string
// representation of the exchange rate, such as "USD/EUR 0.9097".
// See also method [Currency.String].
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (r ExchangeRate) String() string {
	return r.base.Code() + "/" + r.quote.Code() + " " + r.dec().String()
}
