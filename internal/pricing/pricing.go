// Package pricing computes cart totals. Everything here is pure.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

// DefaultTaxRate is the VAT applied at checkout.
var DefaultTaxRate = decimal.RequireFromString("0.21")

type Line struct {
	UnitPrice money.Money
	Quantity  int
}

type Totals struct {
	Subtotal   money.Money `json:"subtotal"`
	Tax        money.Money `json:"tax"`
	GrandTotal money.Money `json:"grand_total"`
}

// Subtotal is Σ unitPrice×quantity, rounded to cents.
func Subtotal(lines []Line) money.Money {
	sum := money.Zero
	for _, l := range lines {
		sum = sum.Add(l.UnitPrice.Mul(l.Quantity))
	}
	return sum.Round2()
}

func ItemCount(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Tax is round2(subtotal × rate), ties rounded up.
func Tax(subtotal money.Money, rate decimal.Decimal) money.Money {
	return subtotal.MulRate(rate).Round2()
}

// Compute rounds the subtotal and the tax line independently, so
// Subtotal + Tax == GrandTotal holds exactly.
func Compute(lines []Line, rate decimal.Decimal) Totals {
	sub := Subtotal(lines)
	tax := Tax(sub, rate)
	return Totals{
		Subtotal:   sub,
		Tax:        tax,
		GrandTotal: sub.Add(tax).Round2(),
	}
}
