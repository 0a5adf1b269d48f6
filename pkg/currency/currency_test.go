package currency

import (
	"errors"
	"testing"
)

func TestAdd_NoFloatDrift(t *testing.T) {
	// 0.1+0.2 is the classic binary float trap.
	if got := Add(0.1, 0.2); got != 0.3 {
		t.Fatalf("Add(0.1, 0.2) = %v, want 0.3", got)
	}
	if got := Add(10.05, 0.01, 0.04); got != 10.10 {
		t.Fatalf("Add = %v, want 10.10", got)
	}
}

func TestSubtract_RoundTripsAdd(t *testing.T) {
	values := []struct{ a, b float64 }{
		{19.99, 0.01},
		{1234.56, 78.90},
		{0.05, 0.05},
		{99999.99, 0.99},
	}
	for _, tc := range values {
		if got := Subtract(Add(tc.a, tc.b), tc.b); got != tc.a {
			t.Fatalf("Subtract(Add(%v,%v), %v) = %v, want %v", tc.a, tc.b, tc.b, got, tc.a)
		}
	}
}

func TestMultiply(t *testing.T) {
	if got := Multiply(19.99, 3); got != 59.97 {
		t.Fatalf("Multiply(19.99, 3) = %v, want 59.97", got)
	}
	if got := Multiply(0.1, 0.1); got != 0.01 {
		t.Fatalf("Multiply(0.1, 0.1) = %v, want 0.01", got)
	}
}

func TestDivide_ByZero(t *testing.T) {
	for _, x := range []float64{0, 1, -3.5, 99999.99} {
		if _, err := Divide(x, 0); !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("Divide(%v, 0) error = %v, want ErrDivisionByZero", x, err)
		}
	}

	got, err := Divide(10, 4)
	if err != nil {
		t.Fatalf("Divide(10, 4) error: %v", err)
	}
	if got != 2.5 {
		t.Fatalf("Divide(10, 4) = %v, want 2.5", got)
	}
}

func TestRound_HalfAwayFromZero(t *testing.T) {
	// Half-up on the magnitude, not banker's rounding.
	if got := Round(2.005, 2); got != 2.01 {
		t.Fatalf("Round(2.005, 2) = %v, want 2.01", got)
	}
	if got := Round(2.004, 2); got != 2.00 {
		t.Fatalf("Round(2.004, 2) = %v, want 2.00", got)
	}
	if got := Round(-2.005, 2); got != -2.01 {
		t.Fatalf("Round(-2.005, 2) = %v, want -2.01", got)
	}
	if got := Round(2.5, 0); got != 3 {
		t.Fatalf("Round(2.5, 0) = %v, want 3", got)
	}
}

func TestPercentageOf(t *testing.T) {
	if got := PercentageOf(200, 18); got != 36 {
		t.Fatalf("PercentageOf(200, 18) = %v, want 36", got)
	}
	if got := PercentageOf(100, 0); got != 0 {
		t.Fatalf("PercentageOf(100, 0) = %v, want 0", got)
	}
}

func TestApplyDiscount(t *testing.T) {
	if got := ApplyDiscount(100, 10); got != 90.00 {
		t.Fatalf("ApplyDiscount(100, 10) = %v, want 90", got)
	}
	if got := ApplyDiscount(49.99, 0); got != 49.99 {
		t.Fatalf("ApplyDiscount(49.99, 0) = %v, want 49.99", got)
	}
}

func TestAddTax(t *testing.T) {
	if got := AddTax(100, 18); got != 118.00 {
		t.Fatalf("AddTax(100, 18) = %v, want 118", got)
	}
	if got := AddTax(0, 18); got != 0 {
		t.Fatalf("AddTax(0, 18) = %v, want 0", got)
	}
}

func TestFormat_IndianGrouping(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1000, "1,000.00"},
		{100000, "1,00,000.00"},
		{1234567.89, "12,34,567.89"},
		{12345678.9, "1,23,45,678.90"},
		{-1234567.89, "-12,34,567.89"},
	}
	for _, tc := range cases {
		if got := Format(tc.in, 2); got != tc.want {
			t.Fatalf("Format(%v, 2) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToCurrency(t *testing.T) {
	if got := ToCurrency(1234567.89, 2); got != "₹12,34,567.89" {
		t.Fatalf("ToCurrency(1234567.89, 2) = %q, want ₹12,34,567.89", got)
	}
	if got := ToCurrency(0, 2); got != "₹0.00" {
		t.Fatalf("ToCurrency(0, 2) = %q, want ₹0.00", got)
	}
}

func TestUnitSymbol(t *testing.T) {
	// The symbol must come out bare: no digits or separators from the
	// formatted amount it is extracted from.
	if got := unitSymbol(DisplayUnit); got != "₹" {
		t.Fatalf("unitSymbol(DisplayUnit) = %q, want ₹", got)
	}
}
