package stockbook

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// displayFraction is the number of decimals used to display any money value.
const displayFraction = 2

// Money represents a monetary value in a given currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float64 | int | int64 | decimal.Decimal | Amount](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// String returns the money value with two decimals and the currency symbol,
// for instance "$14.00". Unknown currencies are rendered as "14.00 XYZ".
func (m Money) String() string {
	rounded := m.value.Round(displayFraction)
	cur := money.GetCurrency(m.cur)
	if cur == nil || cur.Template == "" {
		if m.cur == "" {
			return rounded.StringFixed(displayFraction)
		}
		return rounded.StringFixed(displayFraction) + " " + m.cur
	}
	f := cur.Formatter()
	f.Fraction = displayFraction
	return f.Format(rounded.Shift(displayFraction).IntPart())
}

func (m Money) Currency() string         { return m.cur }
func (m Money) Amount() Amount           { return Amount{value: m.value} }
func (m Money) Equal(n Money) bool       { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) IsNegative() bool         { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Div(n Amount) Money       { return Money{value: m.value.Div(n.value), cur: m.cur} }
func (m Money) InexactFloat64() float64  { return m.value.Round(displayFraction).InexactFloat64() }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Ratio returns m/n as a Percent, 0 when n is zero.
func (m Money) Ratio(n Money) Percent {
	if n.value.IsZero() {
		return 0
	}
	return Percent(m.value.Div(n.value).Shift(2).InexactFloat64())
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes {"currency":..., "amount":...}, the amount rounded to the
// display fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", Amount{value: m.value.Round(displayFraction)})
	return w.MarshalJSON()
}
