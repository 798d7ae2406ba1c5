package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/dwikikusuma/shoping-storefront/internal/pricing"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

var ErrCorrupt = errors.New("corrupt cart payload")

// MaxQuantity bounds a single line. Larger requests are clamped to it.
const MaxQuantity = math.MaxInt32

// Product is what the cart needs to know about a catalog product when adding it.
type Product struct {
	ID         int64
	Name       string
	Price      money.Money
	Stock      int
	CategoryID int64
}

// Line is one distinct product in the cart. Price and Stock are snapshots taken
// when the product was added and are never refreshed by the cart itself.
type Line struct {
	ProductID  int64       `json:"id_key"`
	Name       string      `json:"name"`
	Price      money.Money `json:"price"`
	Stock      int         `json:"stock"`
	CategoryID int64       `json:"category_id,omitempty"`
	Quantity   int         `json:"quantity"`
}

func (l Line) Total() money.Money { return l.Price.Mul(l.Quantity) }

type Snapshot struct {
	Lines     []Line      `json:"items"`
	Subtotal  money.Money `json:"subtotal"`
	ItemCount int         `json:"item_count"`
}

// NewSnapshot copies lines so later cart mutations cannot leak into it.
func NewSnapshot(lines []Line) Snapshot {
	cp := make([]Line, len(lines))
	copy(cp, lines)
	pl := PricingLines(cp)
	return Snapshot{
		Lines:     cp,
		Subtotal:  pricing.Subtotal(pl),
		ItemCount: pricing.ItemCount(pl),
	}
}

func (s Snapshot) Empty() bool { return len(s.Lines) == 0 }

func (s Snapshot) Line(productID int64) (Line, bool) {
	for _, l := range s.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

func PricingLines(lines []Line) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, pricing.Line{UnitPrice: l.Price, Quantity: l.Quantity})
	}
	return out
}

// Encode renders lines in the persisted shape: a JSON array of product fields plus quantity.
func Encode(lines []Line) ([]byte, error) {
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// Decode parses a persisted cart. Payloads that break the cart's invariants
// (unknown product, quantity below one, duplicate product) are reported as ErrCorrupt.
func Decode(b []byte) ([]Line, error) {
	var lines []Line
	if err := json.Unmarshal(b, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	seen := make(map[int64]struct{}, len(lines))
	for i, l := range lines {
		if l.ProductID <= 0 {
			return nil, fmt.Errorf("%w: line %d has no product id", ErrCorrupt, i)
		}
		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: line %d has quantity %d", ErrCorrupt, i, l.Quantity)
		}
		if l.Price.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has negative price", ErrCorrupt, i)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("%w: product %d listed twice", ErrCorrupt, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return lines, nil
}
