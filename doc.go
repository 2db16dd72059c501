/*
Package money implements monetary values in various currencies with
arbitrary-precision decimal arithmetic and composable text formatting.

# Features

  - Immutable monetary values, ensuring safe usage across multiple goroutines
  - Arbitrary-precision decimal arithmetic with explicit scale tracking
  - Support for various currencies and their corresponding scales
  - Eight rounding modes, including a mode that fails if rounding would
    lose information
  - Conversion of monetary values using exchange rates
  - Locale-aware printing and parsing built from composable elements

# Representation

The package provides two monetary types.
A [BigAmount] pairs a [Currency] with a decimal value of any scale, so
"USD 10", "USD 10.0" and "USD 10.00" are three distinct values.
An [Amount] is a BigAmount whose scale always equals the scale of its
currency, which is the natural type for prices and account balances.
The decimal value is an [inf.Dec]: an arbitrary-precision integer
coefficient combined with a scale, denoting coefficient × 10⁻ˢᶜᵃˡᵉ.
The Currency type is an integer index into in-memory arrays containing
information such as the alphabetic code, the numeric code, and the scale.

# Operations

Addition and subtraction require both operands to share a currency and
are always exact: the result carries the larger operand scale.
Multiplication by a decimal factor is exact, producing the sum of the
operand scales, while division requires an explicit result scale and
[RoundingMode].
An Amount can also be split into near-equal parts that sum exactly to
the original, and converted to another currency with an [ExchangeRate].

# Rounding

Every operation that can lose information takes an explicit
[RoundingMode]; there is no implicit rounding anywhere in the package.
[RoundUnnecessary], the zero value, turns unexpected precision loss
into an error.

# Formatting

A [Formatter] converts amounts to and from human-readable text.
It is assembled with a [FormatterBuilder] from elements such as the
amount itself, the currency code, the numeric currency code, the
localized currency symbol, literals, and user-supplied elements.
The digit characters and separators of the amount are controlled by an
[AmountStyle], which can be fixed or resolved from the formatter locale.
Parsing runs the same elements in order and reports the exact index
of the first failure.

# Errors

Errors may occur during parsing of amounts, currencies, and rates, as
well as during arithmetic operations when certain conditions are not met
(e.g., currency mismatch, division by zero, rounding that would lose
information).
All failures are reported as errors; only the Must* constructors panic.

[inf.Dec]: https://pkg.go.dev/gopkg.in/inf.v0#Dec
*/
package money
