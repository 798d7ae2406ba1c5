// Package money holds the decimal amount type shared by the cart, pricing and
// the backend wire types. Amounts travel as plain JSON numbers.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. The zero value is 0.
type Money struct {
	amount decimal.Decimal
}

var Zero = Money{}

func New(v float64) Money {
	return Money{amount: decimal.NewFromFloat(v)}
}

func FromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -2)}
}

func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{amount: d}, nil
}

func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money { return Money{amount: m.amount.Add(o.amount)} }

func (m Money) Mul(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty)))}
}

// MulRate multiplies by a fractional rate such as a tax rate. The result is not rounded.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate)}
}

// Round2 rounds to cents, ties away from zero (half-up for non-negative amounts).
func (m Money) Round2() Money { return Money{amount: m.amount.Round(2)} }

func (m Money) Equal(o Money) bool { return m.amount.Equal(o.amount) }
func (m Money) Cmp(o Money) int { return m.amount.Cmp(o.amount) }
func (m Money) IsZero() bool { return m.amount.IsZero() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }
func (m Money) Decimal() decimal.Decimal { return m.amount }

func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

// String renders the amount with exactly two decimals.
func (m Money) String() string { return m.amount.StringFixed(2) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}

// UnmarshalJSON accepts numbers, quoted numbers and null (zero).
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Money{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("decode money: %w", err)
	}
	m.amount = d
	return nil
}
