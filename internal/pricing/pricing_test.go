package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

func TestComputeTwoLineCart(t *testing.T) {
	lines := []Line{
		{UnitPrice: money.MustParse("10.00"), Quantity: 2},
		{UnitPrice: money.MustParse("15.00"), Quantity: 1},
	}

	got := Compute(lines, DefaultTaxRate)

	if got.Subtotal.String() != "35.00" {
		t.Fatalf("subtotal = %s", got.Subtotal)
	}
	if got.Tax.String() != "7.35" {
		t.Fatalf("tax = %s", got.Tax)
	}
	if got.GrandTotal.String() != "42.35" {
		t.Fatalf("grand total = %s", got.GrandTotal)
	}
	if !got.Subtotal.Add(got.Tax).Equal(got.GrandTotal) {
		t.Fatalf("subtotal + tax != grand total")
	}
	if ItemCount(lines) != 3 {
		t.Fatalf("item count = %d", ItemCount(lines))
	}
}

func TestTaxRoundsHalfUp(t *testing.T) {
	// 0.50 × 0.21 = 0.105 -> 0.11
	if got := Tax(money.MustParse("0.50"), DefaultTaxRate); got.String() != "0.11" {
		t.Fatalf("tax = %s, want 0.11", got)
	}
	// 1.25 × 0.1 = 0.125 -> 0.13
	if got := Tax(money.MustParse("1.25"), decimal.RequireFromString("0.1")); got.String() != "0.13" {
		t.Fatalf("tax = %s, want 0.13", got)
	}
}

func TestTotalsAlwaysAddUp(t *testing.T) {
	prices := []string{"0.01", "0.99", "3.33", "7.77", "19.95", "104.49", "0.05"}
	for _, p := range prices {
		for qty := 1; qty <= 7; qty++ {
			got := Compute([]Line{{UnitPrice: money.MustParse(p), Quantity: qty}, {UnitPrice: money.MustParse("2.15"), Quantity: 1}}, DefaultTaxRate)
			if !got.Subtotal.Add(got.Tax).Equal(got.GrandTotal) {
				t.Fatalf("price %s qty %d: %s + %s != %s", p, qty, got.Subtotal, got.Tax, got.GrandTotal)
			}
		}
	}
}

func TestEmpty(t *testing.T) {
	got := Compute(nil, DefaultTaxRate)
	if !got.GrandTotal.IsZero() || ItemCount(nil) != 0 {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}
