package stockbook

import (
	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal | Amount](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case Amount:
		return v.value
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Amount is a stored numeric field: a cost, a fee, a rate or a quantity.
// It has no currency, that is given by the field it lives in.
type Amount struct {
	value decimal.Decimal
}

// A creates an Amount.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func (a Amount) Decimal() decimal.Decimal { return a.value }
func (a Amount) Equal(b Amount) bool      { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool             { return a.value.IsZero() }
func (a Amount) IsPositive() bool         { return a.value.IsPositive() }
func (a Amount) IsNegative() bool         { return a.value.IsNegative() }
func (a Amount) LessThan(b Amount) bool   { return a.value.LessThan(b.value) }
func (a Amount) Add(b Amount) Amount      { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount      { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Mul(b Amount) Amount      { return Amount{value: a.value.Mul(b.value)} }
func (a Amount) Div(b Amount) Amount      { return Amount{value: a.value.Div(b.value)} }
func (a Amount) Floor() Amount            { return Amount{value: a.value.Floor()} }
func (a Amount) String() string           { return a.value.String() }
func (a Amount) InexactFloat64() float64  { return a.value.InexactFloat64() }

// MarshalJSON writes the amount as a bare JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted number.
func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.value.UnmarshalJSON(b)
}
