package app

import (
	"context"

	"github.com/dwikikusuma/shoping-storefront/internal/cart/domain"
)

// Persister keeps the encoded cart of one session under a storage key.
// Load returns (nil, nil) when nothing was stored yet.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

// ProductReader fetches the product being added so the cart line holds the
// current name, price and stock.
type ProductReader interface {
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

func StorageKey(sessionID string) string {
	return "cart:" + sessionID
}
