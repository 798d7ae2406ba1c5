package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/shoping-storefront/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/shoping-storefront/internal/checkout/app"
)

type CartRegistryReader struct {
	carts *cartapp.Registry
}

func NewCartRegistryReader(carts *cartapp.Registry) *CartRegistryReader {
	return &CartRegistryReader{carts: carts}
}

func (r *CartRegistryReader) Cart(ctx context.Context, sessionID string) checkoutapp.Cart {
	return storeCart{store: r.carts.Get(ctx, sessionID)}
}

type storeCart struct {
	store *cartapp.Store
}

func (c storeCart) Items() []checkoutapp.CartItem {
	snap := c.store.Snapshot()
	items := make([]checkoutapp.CartItem, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, checkoutapp.CartItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.Price,
			Quantity:  l.Quantity,
		})
	}
	return items
}

func (c storeCart) Clear(ctx context.Context) {
	c.store.Clear(ctx)
}
