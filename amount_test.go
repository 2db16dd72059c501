package money

import (
	"errors"
	"fmt"
	"testing"
)

func TestAmount_ZeroValue(t *testing.T) {
	got := Amount{}
	if got.String() != "XXX 0" {
		t.Errorf("Amount{} = %q, want %q", got, "XXX 0")
	}
	if !got.BigAmount().SameScaleAsCurr() {
		t.Errorf("Amount{} does not carry the scale of its currency")
	}
}

func TestAmount_Interfaces(t *testing.T) {
	var i any = Amount{}
	_, ok := i.(fmt.Stringer)
	if !ok {
		t.Errorf("%T does not implement fmt.Stringer", i)
	}
	_, ok = i.(fmt.Formatter)
	if !ok {
		t.Errorf("%T does not implement fmt.Formatter", i)
	}
}

func TestNewAmount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			curr     string
			unscaled int64
			scale    int
			want     string
		}{
			{"JPY", 100, 0, "JPY 100"},
			{"USD", 1234, 2, "USD 12.34"},
			{"USD", 12, 0, "USD 12.00"},  // padded to the currency scale
			{"USD", 120, 1, "USD 12.00"}, // padded to the currency scale
			{"USD", 1200, 3, "USD 1.20"}, // trailing zero discarded exactly
			{"OMR", 12345, 3, "OMR 12.345"},
			{"USD", 0, 0, "USD 0.00"},
		}
		for _, tt := range tests {
			got, err := NewAmount(tt.curr, tt.unscaled, tt.scale)
			if err != nil {
				t.Errorf("NewAmount(%q, %v, %v) failed: %v", tt.curr, tt.unscaled, tt.scale, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("NewAmount(%q, %v, %v) = %q, want %q", tt.curr, tt.unscaled, tt.scale, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			curr     string
			unscaled int64
			scale    int
		}{
			{"UUU", 1, 0},
			{"USD", 1, -1},
			{"USD", 1005, 3}, // 1.005 does not fit scale 2
			{"JPY", 105, 1},  // 10.5 does not fit scale 0
		}
		for _, tt := range tests {
			_, err := NewAmount(tt.curr, tt.unscaled, tt.scale)
			if err == nil {
				t.Errorf("NewAmount(%q, %v, %v) did not fail", tt.curr, tt.unscaled, tt.scale)
			}
		}
	})
}

func TestMustNewAmount(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("MustNewAmount(\"UUU\", 1, 0) did not panic")
			}
		}()
		MustNewAmount("UUU", 1, 0)
	})
}

func TestNewAmountFromMinorUnits(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			curr  string
			units int64
			want  string
		}{
			{"USD", 1234, "USD 12.34"},
			{"JPY", 1234, "JPY 1234"},
			{"OMR", 1234, "OMR 1.234"},
			{"USD", -1, "USD -0.01"},
		}
		for _, tt := range tests {
			got, err := NewAmountFromMinorUnits(tt.curr, tt.units)
			if err != nil {
				t.Errorf("NewAmountFromMinorUnits(%q, %v) failed: %v", tt.curr, tt.units, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("NewAmountFromMinorUnits(%q, %v) = %q, want %q", tt.curr, tt.units, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		if _, err := NewAmountFromMinorUnits("UUU", 1); err == nil {
			t.Errorf("NewAmountFromMinorUnits(\"UUU\", 1) did not fail")
		}
	})
}

func TestParseAmount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			curr, amount, want string
		}{
			{"USD", "12.34", "USD 12.34"},
			{"USD", "12", "USD 12.00"},
			{"USD", "12.3400", "USD 12.34"},
			{"JPY", "100", "JPY 100"},
			{"OMR", "1.2", "OMR 1.200"},
		}
		for _, tt := range tests {
			got, err := ParseAmount(tt.curr, tt.amount)
			if err != nil {
				t.Errorf("ParseAmount(%q, %q) failed: %v", tt.curr, tt.amount, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("ParseAmount(%q, %q) = %q, want %q", tt.curr, tt.amount, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := []struct {
			curr, amount string
		}{
			{"UUU", "12.34"},
			{"USD", "twelve"},
			{"USD", "12.345"}, // does not fit scale 2
			{"JPY", "1.5"},    // does not fit scale 0
		}
		for _, tt := range tests {
			_, err := ParseAmount(tt.curr, tt.amount)
			if err == nil {
				t.Errorf("ParseAmount(%q, %q) did not fail", tt.curr, tt.amount)
			}
		}
	})
}

func TestAmount_MinorUnits(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			curr, amount string
			want         int64
		}{
			{"USD", "12.34", 1234},
			{"USD", "-0.01", -1},
			{"JPY", "100", 100},
			{"OMR", "1.234", 1234},
		}
		for _, tt := range tests {
			a := MustParseAmount(tt.curr, tt.amount)
			got, ok := a.MinorUnits()
			if !ok {
				t.Errorf("%v.MinorUnits() not representable", a)
				continue
			}
			if got != tt.want {
				t.Errorf("%v.MinorUnits() = %v, want %v", a, got, tt.want)
			}
		}
	})

	t.Run("overflow", func(t *testing.T) {
		a := MustParseAmount("USD", "92233720368547758100.00")
		if _, ok := a.MinorUnits(); ok {
			t.Errorf("%v.MinorUnits() reported ok, want overflow", a)
		}
	})
}

func TestAmount_AddSub(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := MustParseAmount("USD", "10.00")
		b := MustParseAmount("USD", "2.50")

		got, err := a.Add(b)
		if err != nil {
			t.Fatalf("%v.Add(%v) failed: %v", a, b, err)
		}
		if got.String() != "USD 12.50" {
			t.Errorf("%v.Add(%v) = %q, want %q", a, b, got, "USD 12.50")
		}

		got, err = a.Sub(b)
		if err != nil {
			t.Fatalf("%v.Sub(%v) failed: %v", a, b, err)
		}
		if got.String() != "USD 7.50" {
			t.Errorf("%v.Sub(%v) = %q, want %q", a, b, got, "USD 7.50")
		}
	})

	t.Run("error", func(t *testing.T) {
		a := MustParseAmount("USD", "10.00")
		b := MustParseAmount("EUR", "2.50")
		if _, err := a.Add(b); !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("%v.Add(%v) = %v, want %v", a, b, err, ErrCurrencyMismatch)
		}
		if _, err := a.Sub(b); !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("%v.Sub(%v) = %v, want %v", a, b, err, ErrCurrencyMismatch)
		}
	})
}

func TestAmount_Mul(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			a, e, want string
		}{
			{"2.00", "3", "USD 6.00"},
			{"2.50", "4", "USD 10.00"},
			{"2.00", "1.25", "USD 2.50"},
		}
		for _, tt := range tests {
			a := MustParseAmount("USD", tt.a)
			got, err := a.Mul(dec(t, tt.e))
			if err != nil {
				t.Errorf("%v.Mul(%v) failed: %v", a, tt.e, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("%v.Mul(%v) = %q, want %q", a, tt.e, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		a := MustParseAmount("USD", "2.01")
		_, err := a.Mul(dec(t, "1.25"))
		if !errors.Is(err, ErrUnnecessaryRounding) {
			t.Errorf("%v.Mul(1.25) = %v, want %v", a, err, ErrUnnecessaryRounding)
		}
	})
}

func TestAmount_MulRound(t *testing.T) {
	tests := []struct {
		a, e string
		mode RoundingMode
		want string
	}{
		{"2.01", "1.25", RoundHalfUp, "USD 2.51"},
		{"2.01", "1.25", RoundUp, "USD 2.52"},
		{"9.99", "0.1", RoundHalfEven, "USD 1.00"},
	}
	for _, tt := range tests {
		a := MustParseAmount("USD", tt.a)
		got, err := a.MulRound(dec(t, tt.e), tt.mode)
		if err != nil {
			t.Errorf("%v.MulRound(%v, %v) failed: %v", a, tt.e, tt.mode, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%v.MulRound(%v, %v) = %q, want %q", a, tt.e, tt.mode, got, tt.want)
		}
	}
}

func TestAmount_Quo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := MustParseAmount("USD", "1.50")
		got, err := a.Quo(dec(t, "2"))
		if err != nil {
			t.Fatalf("%v.Quo(2) failed: %v", a, err)
		}
		if got.String() != "USD 0.75" {
			t.Errorf("%v.Quo(2) = %q, want %q", a, got, "USD 0.75")
		}
	})

	t.Run("error", func(t *testing.T) {
		a := MustParseAmount("USD", "1.00")
		if _, err := a.Quo(dec(t, "3")); !errors.Is(err, ErrUnnecessaryRounding) {
			t.Errorf("%v.Quo(3) = %v, want %v", a, err, ErrUnnecessaryRounding)
		}
		if _, err := a.QuoRound(dec(t, "0"), RoundHalfUp); !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("%v.QuoRound(0, HALF_UP) = %v, want %v", a, err, ErrDivisionByZero)
		}
	})
}

func TestAmount_QuoRound(t *testing.T) {
	tests := []struct {
		a, e string
		mode RoundingMode
		want string
	}{
		{"1.00", "3", RoundHalfUp, "USD 0.33"},
		{"2.00", "3", RoundHalfUp, "USD 0.67"},
		{"2.00", "3", RoundFloor, "USD 0.66"},
	}
	for _, tt := range tests {
		a := MustParseAmount("USD", tt.a)
		got, err := a.QuoRound(dec(t, tt.e), tt.mode)
		if err != nil {
			t.Errorf("%v.QuoRound(%v, %v) failed: %v", a, tt.e, tt.mode, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("%v.QuoRound(%v, %v) = %q, want %q", a, tt.e, tt.mode, got, tt.want)
		}
	}
}

func TestAmount_ConvTo(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		a := MustParseAmount("USD", "10.00")
		got, err := a.ConvTo(EUR, dec(t, "0.9097"), RoundHalfEven)
		if err != nil {
			t.Fatalf("%v.ConvTo(EUR, 0.9097, HALF_EVEN) failed: %v", a, err)
		}
		if got.String() != "EUR 9.10" {
			t.Errorf("%v.ConvTo(EUR, 0.9097, HALF_EVEN) = %q, want %q", a, got, "EUR 9.10")
		}
	})

	t.Run("error", func(t *testing.T) {
		a := MustParseAmount("USD", "10.00")
		if _, err := a.ConvTo(EUR, dec(t, "0.9097"), RoundUnnecessary); !errors.Is(err, ErrUnnecessaryRounding) {
			t.Errorf("%v.ConvTo(EUR, 0.9097, UNNECESSARY) = %v, want %v", a, err, ErrUnnecessaryRounding)
		}
		if _, err := a.ConvTo(EUR, dec(t, "-1"), RoundHalfUp); err == nil {
			t.Errorf("%v.ConvTo(EUR, -1, HALF_UP) did not fail", a)
		}
	})
}

func TestAmount_Split(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			curr, a string
			parts   int
			want    []string
		}{
			{"USD", "1.01", 2, []string{"USD 0.51", "USD 0.50"}},
			{"USD", "1.00", 3, []string{"USD 0.34", "USD 0.33", "USD 0.33"}},
			{"USD", "0.02", 3, []string{"USD 0.01", "USD 0.01", "USD 0.00"}},
			{"USD", "-1.01", 2, []string{"USD -0.51", "USD -0.50"}},
			{"JPY", "100", 3, []string{"JPY 34", "JPY 33", "JPY 33"}},
			{"USD", "1.00", 1, []string{"USD 1.00"}},
		}
		for _, tt := range tests {
			a := MustParseAmount(tt.curr, tt.a)
			got, err := a.Split(tt.parts)
			if err != nil {
				t.Errorf("%v.Split(%v) failed: %v", a, tt.parts, err)
				continue
			}
			if len(got) != len(tt.want) {
				t.Errorf("%v.Split(%v) returned %v parts, want %v", a, tt.parts, len(got), len(tt.want))
				continue
			}
			sum := MustParseAmount(tt.curr, "0")
			for i := range got {
				if got[i].String() != tt.want[i] {
					t.Errorf("%v.Split(%v)[%v] = %q, want %q", a, tt.parts, i, got[i], tt.want[i])
				}
				sum, err = sum.Add(got[i])
				if err != nil {
					t.Fatalf("summing parts failed: %v", err)
				}
			}
			if c, _ := sum.Cmp(a); c != 0 {
				t.Errorf("%v.Split(%v) parts sum to %q, want the original", a, tt.parts, sum)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		a := MustParseAmount("USD", "1.00")
		for _, parts := range []int{0, -1} {
			if _, err := a.Split(parts); err == nil {
				t.Errorf("%v.Split(%v) did not fail", a, parts)
			}
		}
	})
}

func TestAmount_Cmp(t *testing.T) {
	a := MustParseAmount("USD", "1.00")
	b := MustParseAmount("USD", "2.00")
	got, err := a.Cmp(b)
	if err != nil {
		t.Fatalf("%v.Cmp(%v) failed: %v", a, b, err)
	}
	if got != -1 {
		t.Errorf("%v.Cmp(%v) = %v, want -1", a, b, got)
	}
}

func TestAmount_Format(t *testing.T) {
	tests := []struct {
		curr, a      string
		format, want string
	}{
		{"USD", "12.34", "%v", "USD 12.34"},
		{"USD", "12.34", "%s", "USD 12.34"},
		{"USD", "12.34", "%q", "\"USD 12.34\""},
		{"USD", "12.34", "%f", "12.34"},
		{"USD", "12.34", "%c", "USD"},
		{"USD", "12.34", "%12s", "   USD 12.34"},
		{"USD", "12.34", "%-12s", "USD 12.34   "},
	}
	for _, tt := range tests {
		a := MustParseAmount(tt.curr, tt.a)
		got := fmt.Sprintf(tt.format, a)
		if got != tt.want {
			t.Errorf("fmt.Sprintf(%q, %v) = %q, want %q", tt.format, a, got, tt.want)
		}
	}
}
