package money

import (
	"golang.org/x/text/language"
)

// AmountStyle defines the character set used to print and parse the
// numeric part of an amount: the zero digit, the decimal point, and the
// grouping separator, together with the grouping size and flags.
//
// A style is an immutable value; the With* methods return modified copies.
// Localized styles carry no separator characters of their own: they are
// resolved against the formatter locale freshly on every print or parse
// call, which keeps a single [Formatter] safe for concurrent use.
type AmountStyle struct {
	zeroDigit    rune
	decimalPoint rune
	groupingChar rune
	groupingSize int
	grouping     bool
	forceDecimal bool
	localized    bool
}

var (
	// StyleASCII uses '.' for the decimal point and ',' for grouping
	// in groups of 3, with grouping disabled.
	StyleASCII = AmountStyle{zeroDigit: '0', decimalPoint: '.', groupingChar: ',', groupingSize: 3}

	// StyleASCIIGrouping is [StyleASCII] with grouping enabled.
	StyleASCIIGrouping = AmountStyle{zeroDigit: '0', decimalPoint: '.', groupingChar: ',', groupingSize: 3, grouping: true}

	// StyleLocalized resolves the separator characters from the formatter
	// locale on each call, with grouping enabled in groups of 3.
	StyleLocalized = AmountStyle{groupingSize: 3, grouping: true, localized: true}

	// StyleLocalizedNoGrouping is [StyleLocalized] with grouping disabled.
	StyleLocalizedNoGrouping = AmountStyle{groupingSize: 3, localized: true}
)

// ZeroDigit returns the character representing zero; successive digits
// are represented by successive characters.
// It returns 0 for an unresolved localized style.
func (s AmountStyle) ZeroDigit() rune { return s.zeroDigit }

// DecimalPoint returns the character separating the integer and
// fractional parts.
// It returns 0 for an unresolved localized style.
func (s AmountStyle) DecimalPoint() rune { return s.decimalPoint }

// GroupingChar returns the character separating groups of integer digits.
// It returns 0 for an unresolved localized style.
func (s AmountStyle) GroupingChar() rune { return s.groupingChar }

// GroupingSize returns the number of integer digits in a group.
func (s AmountStyle) GroupingSize() int { return s.groupingSize }

// IsGrouping returns true if grouping separators are inserted when
// printing.
func (s AmountStyle) IsGrouping() bool { return s.grouping }

// IsForcedDecimalPoint returns true if the decimal point is printed even
// when there are no fractional digits.
func (s AmountStyle) IsForcedDecimalPoint() bool { return s.forceDecimal }

// IsLocalized returns true if the separator characters are resolved from
// the formatter locale on each call.
func (s AmountStyle) IsLocalized() bool { return s.localized }

// WithZeroDigit returns a copy of the style with the given zero digit.
// The copy is no longer localized.
func (s AmountStyle) WithZeroDigit(ch rune) AmountStyle {
	s.zeroDigit = ch
	s.localized = false
	return s
}

// WithDecimalPoint returns a copy of the style with the given decimal
// point character.
// The copy is no longer localized.
func (s AmountStyle) WithDecimalPoint(ch rune) AmountStyle {
	s.decimalPoint = ch
	s.localized = false
	return s
}

// WithGroupingChar returns a copy of the style with the given grouping
// character.
// The copy is no longer localized.
func (s AmountStyle) WithGroupingChar(ch rune) AmountStyle {
	s.groupingChar = ch
	s.localized = false
	return s
}

// WithGroupingSize returns a copy of the style with the given grouping
// size.
// Sizes smaller than 1 are treated as 1.
func (s AmountStyle) WithGroupingSize(size int) AmountStyle {
	if size < 1 {
		size = 1
	}
	s.groupingSize = size
	return s
}

// WithGrouping returns a copy of the style with grouping enabled or
// disabled.
func (s AmountStyle) WithGrouping(grouping bool) AmountStyle {
	s.grouping = grouping
	return s
}

// WithForcedDecimalPoint returns a copy of the style that prints the
// decimal point even when there are no fractional digits.
func (s AmountStyle) WithForcedDecimalPoint(forced bool) AmountStyle {
	s.forceDecimal = forced
	return s
}

// localeSymbols holds the decimal point and grouping characters of a
// locale family.
type localeSymbols struct {
	decimalPoint rune
	groupingChar rune
}

// Locale families with known separator conventions.
// x/text keeps the full CLDR symbol tables in internal packages, so the
// common conventions are carried here and matched with the standard
// language matcher; unmatched locales fall back to the first entry.
var (
	styleTags = []language.Tag{
		language.English, // 1,234,567.89
		language.German,  // 1.234.567,89
		language.Dutch,
		language.Italian,
		language.Spanish,
		language.Portuguese, // 1.234.567,89
		language.Turkish,
		language.Indonesian,
		language.French, // 1 234 567,89
		language.Russian,
		language.Polish,
		language.Czech,
		language.Swedish,
		language.Finnish,
		language.Norwegian,
		language.Ukrainian,
	}

	styleSymbols = []localeSymbols{
		{'.', ','},
		{',', '.'},
		{',', '.'},
		{',', '.'},
		{',', '.'},
		{',', '.'},
		{',', '.'},
		{',', '.'},
		{',', ' '},
		{',', ' '},
		{',', ' '},
		{',', ' '},
		{',', ' '},
		{',', ' '},
		{',', ' '},
		{',', ' '},
	}

	styleMatcher = language.NewMatcher(styleTags)
)

// symbolsFor resolves the separator characters for a locale.
func symbolsFor(loc language.Tag) localeSymbols {
	_, i, _ := styleMatcher.Match(loc)
	return styleSymbols[i]
}

// localize resolves a localized style against the given locale.
// The resolution is a pure function of the style and the locale: the
// result is a fresh value and nothing is cached on the receiver, so
// formatters sharing a style can be used concurrently.
func (s AmountStyle) localize(loc language.Tag) AmountStyle {
	if !s.localized {
		return s
	}
	sym := symbolsFor(loc)
	s.zeroDigit = '0'
	s.decimalPoint = sym.decimalPoint
	s.groupingChar = sym.groupingChar
	s.localized = false
	return s
}
