package money

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"

	inf "gopkg.in/inf.v0"
)

var (
	errMissingAmount   = errors.New("no amount found")
	errMissingCurrency = errors.New("no currency found")
	errNotPrintable    = errors.New("formatter cannot print")
	errNotParseable    = errors.New("formatter cannot parse")
	errUnparsedText    = errors.New("unparsed text remains")
)

// ParseError describes a failure of [Formatter.Parse]: the original input
// text and the byte index of the first position that could not be matched.
type ParseError struct {
	Text  string // original input text
	Index int    // byte index of the first failure
	err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("parsing %q at index %d: %v", e.Text, e.Index, e.err)
	}
	return fmt.Sprintf("parsing %q: no match at index %d", e.Text, e.Index)
}

// Unwrap returns the underlying cause, if any.
func (e *ParseError) Unwrap() error {
	return e.err
}

// Printer is the interface implemented by user-supplied formatter elements
// that can render an amount into the output buffer.
// Implementations must be immutable: the same Printer may be used by many
// goroutines at once.
// See also method [FormatterBuilder.Append].
type Printer interface {
	Print(ctx *PrintContext, buf *strings.Builder, amount BigAmount) error
}

// Parser is the interface implemented by user-supplied formatter elements
// that can consume text from the parse context.
// A Parser either advances the context index past the text it consumed or
// records an error position; it must not undo the work of earlier elements.
// Implementations must be immutable.
// See also method [FormatterBuilder.Append].
type Parser interface {
	Parse(ctx *ParseContext)
}

// PrintContext carries the state of a single print call.
// A fresh context is created for every call, so printing never mutates
// the formatter.
type PrintContext struct {
	locale language.Tag
}

// Locale returns the locale of the print call.
func (ctx *PrintContext) Locale() language.Tag {
	return ctx.locale
}

// ParseContext carries the state of a single parse call: the input text,
// the cursor, the first error position, and the currency and decimal
// fragments collected so far.
// A fresh context is created for every call and must not be retained or
// shared after the call returns.
type ParseContext struct {
	locale    language.Tag
	text      string
	index     int
	errIndex  int // -1 means no error
	curr      Currency
	currSet   bool
	unscaled  *big.Int
	scale     int
	amountSet bool
}

func newParseContext(loc language.Tag, text string) *ParseContext {
	return &ParseContext{locale: loc, text: text, errIndex: -1}
}

// Locale returns the locale of the parse call.
func (ctx *ParseContext) Locale() language.Tag {
	return ctx.locale
}

// Text returns the full input text being parsed.
func (ctx *ParseContext) Text() string {
	return ctx.text
}

// Index returns the current byte position within the input text.
func (ctx *ParseContext) Index() int {
	return ctx.index
}

// SetIndex moves the cursor past consumed text.
func (ctx *ParseContext) SetIndex(index int) {
	ctx.index = index
}

// ErrorIndex returns the byte position of the first parse failure,
// or -1 if no failure has been recorded.
func (ctx *ParseContext) ErrorIndex() int {
	return ctx.errIndex
}

// SetError records a parse failure at the current position.
// The cursor is left unchanged.
func (ctx *ParseContext) SetError() {
	ctx.errIndex = ctx.index
}

// SetErrorAt records a parse failure at the given position.
// The cursor is left unchanged.
func (ctx *ParseContext) SetErrorAt(index int) {
	ctx.errIndex = index
}

// IsError returns true if a parse failure has been recorded.
func (ctx *ParseContext) IsError() bool {
	return ctx.errIndex >= 0
}

// SetParsedCurrency stores the currency recognized by an element.
func (ctx *ParseContext) SetParsedCurrency(c Currency) {
	ctx.curr = c
	ctx.currSet = true
}

// ParsedCurrency returns the currency collected so far, if any.
func (ctx *ParseContext) ParsedCurrency() (Currency, bool) {
	return ctx.curr, ctx.currSet
}

// SetParsedAmount stores the unscaled coefficient and scale recognized by
// an element.
// The coefficient is copied.
func (ctx *ParseContext) SetParsedAmount(unscaled *big.Int, scale int) {
	ctx.unscaled = new(big.Int).Set(unscaled)
	ctx.scale = scale
	ctx.amountSet = true
}

// ParsedAmount returns a copy of the unscaled coefficient and the scale
// collected so far, if any.
func (ctx *ParseContext) ParsedAmount() (unscaled *big.Int, scale int, ok bool) {
	if !ctx.amountSet {
		return nil, 0, false
	}
	return new(big.Int).Set(ctx.unscaled), ctx.scale, true
}

// toBigAmount assembles the collected fragments into an amount.
func (ctx *ParseContext) toBigAmount() (BigAmount, error) {
	if !ctx.amountSet {
		return BigAmount{}, errMissingAmount
	}
	if !ctx.currSet {
		return BigAmount{}, errMissingCurrency
	}
	d := inf.NewDecBig(new(big.Int).Set(ctx.unscaled), inf.Scale(ctx.scale))
	return newBigAmountUnsafe(ctx.curr, d), nil
}

// printerParser is the closed set of formatter elements.
// Elements are immutable values created while the builder is populated
// and frozen into the formatter's element sequence.
type printerParser interface {
	isPrinter() bool
	isParser() bool
	print(ctx *PrintContext, buf *strings.Builder, a BigAmount) error
	parse(ctx *ParseContext)
	String() string
}

// FormatterBuilder accumulates an ordered sequence of formatter elements.
// The zero value is an empty builder ready for use.
//
// A builder is a single-writer staging object and is not safe for
// concurrent use; the formatters it produces are.
// Building does not consume the builder, which remains reusable.
type FormatterBuilder struct {
	elems []printerParser
}

// NewFormatterBuilder creates a new empty builder.
func NewFormatterBuilder() *FormatterBuilder {
	return &FormatterBuilder{}
}

func (b *FormatterBuilder) appendInternal(e printerParser) *FormatterBuilder {
	b.elems = append(b.elems, e)
	return b
}

// AppendAmount appends the amount to the builder using a localized style,
// [StyleLocalized].
// The amount is the value itself, such as "12.34".
func (b *FormatterBuilder) AppendAmount() *FormatterBuilder {
	return b.appendInternal(amountElem{style: StyleLocalized})
}

// AppendAmountStyled appends the amount to the builder using the given
// style.
// See [AmountStyle] for details of the styling options.
func (b *FormatterBuilder) AppendAmountStyled(style AmountStyle) *FormatterBuilder {
	return b.appendInternal(amountElem{style: style})
}

// AppendCurrencyCode appends the 3-letter ISO code, such as "GBP",
// to the builder.
func (b *FormatterBuilder) AppendCurrencyCode() *FormatterBuilder {
	return b.appendInternal(codeElem{})
}

// AppendCurrencyNumericCode appends the numeric ISO code, such as "826",
// to the builder.
// The code is printed without zero padding.
func (b *FormatterBuilder) AppendCurrencyNumericCode() *FormatterBuilder {
	return b.appendInternal(numericElem{})
}

// AppendCurrencyNumeric3Code appends the numeric ISO code, zero-padded to
// three digits, such as "008", to the builder.
func (b *FormatterBuilder) AppendCurrencyNumeric3Code() *FormatterBuilder {
	return b.appendInternal(numeric3Elem{})
}

// AppendCurrencySymbolLocalized appends the currency symbol chosen by the
// locale of the formatter, such as "$", to the builder.
// The symbol cannot be parsed, so formatters containing this element do
// not support [Formatter.Parse].
func (b *FormatterBuilder) AppendCurrencySymbolLocalized() *FormatterBuilder {
	return b.appendInternal(symbolElem{})
}

// AppendLiteral appends fixed text to the builder.
// An empty literal is ignored.
func (b *FormatterBuilder) AppendLiteral(literal string) *FormatterBuilder {
	if literal == "" {
		return b
	}
	return b.appendInternal(literalElem(literal))
}

// Append appends a user-supplied printer and parser pair to the builder.
// Either may be nil: a nil printer makes the resulting formatter unable
// to print, a nil parser makes it unable to parse.
func (b *FormatterBuilder) Append(p Printer, q Parser) *FormatterBuilder {
	return b.appendInternal(userElem{p: p, q: q})
}

// ToFormatter freezes the accumulated element sequence into an immutable
// [Formatter] bound to the given locale.
// Calling ToFormatter does not change the state of the builder, which can
// be reused.
func (b *FormatterBuilder) ToFormatter(loc language.Tag) *Formatter {
	elems := make([]printerParser, len(b.elems))
	copy(elems, b.elems)
	return &Formatter{locale: loc, elems: elems}
}

// Formatter converts amounts to and from human-readable text by running
// an immutable sequence of elements over a per-call context.
// A Formatter is safe for unsynchronized concurrent use by multiple
// goroutines performing print or parse simultaneously.
type Formatter struct {
	locale language.Tag
	elems  []printerParser
}

// Locale returns the locale of the formatter.
func (f *Formatter) Locale() language.Tag {
	return f.locale
}

// WithLocale returns a copy of the formatter bound to the given locale.
func (f *Formatter) WithLocale(loc language.Tag) *Formatter {
	return &Formatter{locale: loc, elems: f.elems}
}

// IsPrinter returns true if every element of the formatter can print.
func (f *Formatter) IsPrinter() bool {
	for _, e := range f.elems {
		if !e.isPrinter() {
			return false
		}
	}
	return true
}

// IsParser returns true if every element of the formatter can parse.
func (f *Formatter) IsParser() bool {
	for _, e := range f.elems {
		if !e.isParser() {
			return false
		}
	}
	return true
}

// Print renders the amount as text by applying each element of the
// formatter in order.
//
// Print returns an error if the formatter contains an element that cannot
// print, or if an element fails.
func (f *Formatter) Print(a BigAmount) (string, error) {
	if !f.IsPrinter() {
		return "", fmt.Errorf("printing %v: %w", a, errNotPrintable)
	}
	ctx := &PrintContext{locale: f.locale}
	var buf strings.Builder
	for _, e := range f.elems {
		if err := e.print(ctx, &buf, a); err != nil {
			return "", fmt.Errorf("printing %v: %w", a, err)
		}
	}
	return buf.String(), nil
}

// Parse converts text to an amount by applying each element of the
// formatter in order over a fresh [ParseContext].
// Each element either advances the cursor past the text it consumed or
// records the failure position; there is no backtracking across elements,
// so grammars whose elements are ambiguous with their neighbors may fail
// on text they printed.
//
// Parse returns an error if:
//   - the formatter contains an element that cannot parse, such as the
//     localized symbol;
//   - an element fails, in which case the error is a [*ParseError]
//     carrying the failure index and the original text;
//   - unparsed text remains after the last element;
//   - no amount or no currency was collected.
func (f *Formatter) Parse(text string) (BigAmount, error) {
	if !f.IsParser() {
		return BigAmount{}, fmt.Errorf("parsing %q: %w", text, errNotParseable)
	}
	ctx := newParseContext(f.locale, text)
	for _, e := range f.elems {
		e.parse(ctx)
		if ctx.IsError() {
			return BigAmount{}, &ParseError{Text: text, Index: ctx.ErrorIndex()}
		}
	}
	if ctx.Index() != len(text) {
		return BigAmount{}, &ParseError{Text: text, Index: ctx.Index(), err: errUnparsedText}
	}
	a, err := ctx.toBigAmount()
	if err != nil {
		return BigAmount{}, fmt.Errorf("parsing %q: %w", text, err)
	}
	return a, nil
}

// ParseFixed is like [Formatter.Parse] but returns the amount re-expressed
// at the scale of its currency.
// It returns an error if rounding would discard nonzero digits.
func (f *Formatter) ParseFixed(text string) (Amount, error) {
	b, err := f.Parse(text)
	if err != nil {
		return Amount{}, err
	}
	return b.Fixed(RoundUnnecessary)
}

// String implements the [fmt.Stringer] interface and returns a pattern
// describing the element sequence, such as "${code} ${amount}".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (f *Formatter) String() string {
	var buf strings.Builder
	for _, e := range f.elems {
		buf.WriteString(e.String())
	}
	return buf.String()
}

// literalElem matches or emits fixed text.
type literalElem string

func (e literalElem) isPrinter() bool { return true }
func (e literalElem) isParser() bool  { return true }

func (e literalElem) print(_ *PrintContext, buf *strings.Builder, _ BigAmount) error {
	buf.WriteString(string(e))
	return nil
}

func (e literalElem) parse(ctx *ParseContext) {
	end := ctx.Index() + len(e)
	if end <= len(ctx.Text()) && ctx.Text()[ctx.Index():end] == string(e) {
		ctx.SetIndex(end)
	} else {
		ctx.SetError()
	}
}

func (e literalElem) String() string {
	return "'" + string(e) + "'"
}

// amountElem renders or consumes the numeric part of the amount.
type amountElem struct {
	style AmountStyle
}

func (e amountElem) isPrinter() bool { return true }
func (e amountElem) isParser() bool  { return true }

// mapDigit translates an ASCII digit into the style's digit set.
func mapDigit(zero rune, ch byte) rune {
	return zero + rune(ch-'0')
}

func (e amountElem) print(ctx *PrintContext, buf *strings.Builder, a BigAmount) error {
	style := e.style.localize(ctx.Locale())
	str := a.dec().String()
	if strings.HasPrefix(str, "-") {
		buf.WriteByte('-')
		str = str[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(str, ".")
	if style.grouping {
		n := len(intPart)
		for i := 0; i < n; i++ {
			buf.WriteRune(mapDigit(style.zeroDigit, intPart[i]))
			// A separator goes in whenever the count of digits still
			// to emit is a positive multiple of the grouping size.
			if rest := n - i - 1; rest > 0 && rest%style.groupingSize == 0 {
				buf.WriteRune(style.groupingChar)
			}
		}
	} else {
		for i := 0; i < len(intPart); i++ {
			buf.WriteRune(mapDigit(style.zeroDigit, intPart[i]))
		}
	}
	if hasFrac {
		buf.WriteRune(style.decimalPoint)
		for i := 0; i < len(fracPart); i++ {
			buf.WriteRune(mapDigit(style.zeroDigit, fracPart[i]))
		}
	} else if style.forceDecimal {
		buf.WriteRune(style.decimalPoint)
	}
	return nil
}

func (e amountElem) parse(ctx *ParseContext) {
	style := e.style.localize(ctx.Locale())
	text := ctx.Text()
	start := ctx.Index()
	pos := start

	neg := false
	if pos < len(text) {
		switch text[pos] {
		case '-':
			neg = true
			pos++
		case '+':
			pos++
		}
	}

	unscaled := new(big.Int)
	digit := new(big.Int)
	digits, scale := 0, 0
	dpSeen := false
scan:
	for pos < len(text) {
		ch, size := utf8.DecodeRuneInString(text[pos:])
		switch {
		case ch >= style.zeroDigit && ch <= style.zeroDigit+9:
			unscaled.Mul(unscaled, bigTen)
			unscaled.Add(unscaled, digit.SetInt64(int64(ch-style.zeroDigit)))
			digits++
			if dpSeen {
				scale++
			}
		case !dpSeen && isGroupingChar(ch, style.groupingChar):
			// skipped, contributes no digits
		case !dpSeen && ch == style.decimalPoint:
			dpSeen = true
		default:
			break scan
		}
		pos += size
	}

	if digits == 0 {
		ctx.SetError()
		return
	}
	if neg {
		unscaled.Neg(unscaled)
	}
	ctx.SetParsedAmount(unscaled, scale)
	ctx.SetIndex(pos)
}

func (e amountElem) String() string {
	return "${amount}"
}

// codeElem handles the 3-letter currency code.
type codeElem struct{}

func (codeElem) isPrinter() bool { return true }
func (codeElem) isParser() bool  { return true }

func (codeElem) print(_ *PrintContext, buf *strings.Builder, a BigAmount) error {
	buf.WriteString(a.Curr().Code())
	return nil
}

func (codeElem) parse(ctx *ParseContext) {
	text := ctx.Text()
	pos := ctx.Index()
	for i := 0; i < 3; i++ {
		if pos+i >= len(text) || !isLetter(text[pos+i]) {
			// report the first character breaking the 3-letter match
			ctx.SetErrorAt(pos + i)
			return
		}
	}
	c, err := ParseCurr(text[pos : pos+3])
	if err != nil {
		ctx.SetError()
		return
	}
	ctx.SetParsedCurrency(c)
	ctx.SetIndex(pos + 3)
}

func (codeElem) String() string {
	return "${code}"
}

// numericElem handles the numeric currency code without zero padding.
type numericElem struct{}

func (numericElem) isPrinter() bool { return true }
func (numericElem) isParser() bool  { return true }

func (numericElem) print(_ *PrintContext, buf *strings.Builder, a BigAmount) error {
	buf.WriteString(strings.TrimLeft(a.Curr().Num(), "0"))
	return nil
}

func (numericElem) parse(ctx *ParseContext) {
	text := ctx.Text()
	pos := ctx.Index()
	n := 0
	for pos+n < len(text) && n < 3 && isDigit(text[pos+n]) {
		n++
	}
	if n == 0 {
		ctx.SetError()
		return
	}
	num := strings.Repeat("0", 3-n) + text[pos:pos+n]
	c, ok := currLookup[num]
	if !ok {
		ctx.SetError()
		return
	}
	ctx.SetParsedCurrency(c)
	ctx.SetIndex(pos + n)
}

func (numericElem) String() string {
	return "${numericCode}"
}

// numeric3Elem handles the numeric currency code zero-padded to 3 digits.
type numeric3Elem struct{}

func (numeric3Elem) isPrinter() bool { return true }
func (numeric3Elem) isParser() bool  { return true }

func (numeric3Elem) print(_ *PrintContext, buf *strings.Builder, a BigAmount) error {
	buf.WriteString(a.Curr().Num())
	return nil
}

func (numeric3Elem) parse(ctx *ParseContext) {
	text := ctx.Text()
	pos := ctx.Index()
	for i := 0; i < 3; i++ {
		if pos+i >= len(text) || !isDigit(text[pos+i]) {
			ctx.SetErrorAt(pos + i)
			return
		}
	}
	c, ok := currLookup[text[pos:pos+3]]
	if !ok {
		ctx.SetError()
		return
	}
	ctx.SetParsedCurrency(c)
	ctx.SetIndex(pos + 3)
}

func (numeric3Elem) String() string {
	return "${numeric3Code}"
}

// symbolElem handles the localized currency symbol.
// Symbols are print-only: there is no reliable inverse mapping from a
// symbol to a currency.
type symbolElem struct{}

func (symbolElem) isPrinter() bool { return true }
func (symbolElem) isParser() bool  { return false }

func (symbolElem) print(ctx *PrintContext, buf *strings.Builder, a BigAmount) error {
	buf.WriteString(a.Curr().Symbol(ctx.Locale()))
	return nil
}

func (symbolElem) parse(ctx *ParseContext) {
	ctx.SetError()
}

func (symbolElem) String() string {
	return "${symbolLocalized}"
}

// userElem adapts a user-supplied printer and parser pair.
type userElem struct {
	p Printer
	q Parser
}

func (e userElem) isPrinter() bool { return e.p != nil }
func (e userElem) isParser() bool  { return e.q != nil }

func (e userElem) print(ctx *PrintContext, buf *strings.Builder, a BigAmount) error {
	return e.p.Print(ctx, buf, a)
}

func (e userElem) parse(ctx *ParseContext) {
	e.q.Parse(ctx)
}

func (e userElem) String() string {
	return "${custom}"
}

// isGroupingChar reports whether ch separates digit groups under the
// given grouping character. Styles grouping with a plain space also
// match the no-break spaces CLDR data uses for such locales.
func isGroupingChar(ch, grouping rune) bool {
	if ch == grouping {
		return true
	}
	return grouping == ' ' && (ch == '\u00a0' || ch == '\u202f')
}

func isLetter(ch byte) bool {
	return ('A' <= ch && ch <= 'Z') || ('a' <= ch && ch <= 'z')
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

var bigTen = big.NewInt(10)
