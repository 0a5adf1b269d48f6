// Package currency implements exact fixed-point money arithmetic for cart
// and pricing computation. Binary floats accumulate drift across chained
// add/subtract/multiply operations; every operation here runs on exact
// decimals and rounds once at its boundary.
//
// Rounding policy: half away from zero at the requested precision (2.005
// rounds to 2.01), not banker's rounding. Displayed totals depend on this
// and it must not change silently.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultPrecision is the number of fractional digits carried by all
// monetary values at rest and on display.
const DefaultPrecision int32 = 2

// DisplayUnit is the currency the storefront trades in.
var DisplayUnit = currency.INR

var ErrDivisionByZero = errors.New("currency: division by zero")

// Add sums all values, rounded to the default precision.
func Add(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return round(sum, DefaultPrecision)
}

// Subtract returns a-b rounded to the default precision.
func Subtract(a, b float64) float64 {
	return round(decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)), DefaultPrecision)
}

// Multiply returns a*b rounded to the default precision.
func Multiply(a, b float64) float64 {
	return round(decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)), DefaultPrecision)
}

// Divide returns a/b rounded to the default precision. It fails with
// ErrDivisionByZero when b is exactly zero.
func Divide(a, b float64) (float64, error) {
	divisor := decimal.NewFromFloat(b)
	if divisor.IsZero() {
		return 0, ErrDivisionByZero
	}
	return round(decimal.NewFromFloat(a).Div(divisor), DefaultPrecision), nil
}

// PercentageOf returns percent% of value, composed as
// Multiply(value, Divide(percent, 100)). The divisor is the constant 100,
// so unlike Divide there is no failure mode.
func PercentageOf(value, percent float64) float64 {
	q, _ := Divide(percent, 100)
	return Multiply(value, q)
}

// Round rounds value to the given precision, half away from zero.
func Round(value float64, precision int32) float64 {
	return round(decimal.NewFromFloat(value), precision)
}

// ApplyDiscount subtracts discountPercent% from amount.
func ApplyDiscount(amount, discountPercent float64) float64 {
	return Subtract(amount, PercentageOf(amount, discountPercent))
}

// AddTax adds taxPercent% (GST) on top of amount.
func AddTax(amount, taxPercent float64) float64 {
	return Add(amount, PercentageOf(amount, taxPercent))
}

// Format renders value with Indian digit grouping (lakh/crore: the last
// three digits grouped, then pairs), e.g. 1234567.89 -> "12,34,567.89".
func Format(value float64, precision int32) string {
	s := decimal.NewFromFloat(Round(value, precision)).StringFixed(precision)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	out := groupIndian(intPart)
	if hasFrac {
		out += "." + fracPart
	}
	return sign + out
}

// ToCurrency renders value as a symbol-prefixed, Indian-grouped string in
// the display unit, e.g. "₹12,34,567.89". Formatting carries no rounding
// responsibility beyond calling Round first.
func ToCurrency(value float64, precision int32) string {
	return unitSymbol(DisplayUnit) + Format(value, precision)
}

func round(d decimal.Decimal, precision int32) float64 {
	// shopspring's Round is half away from zero, which is exactly the
	// declared policy.
	f, _ := d.Round(precision).Float64()
	return f
}

func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head, tail := digits[:n-3], digits[n-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

// unitSymbol extracts the bare symbol for a unit: x/text renders a zero
// amount as "₹ 0.00", symbol first, then a space, then the digits.
func unitSymbol(u currency.Unit) string {
	s := fmt.Sprintf("%v", currency.Symbol(u.Amount(0)))
	sym, _, _ := strings.Cut(s, " ")
	return sym
}
