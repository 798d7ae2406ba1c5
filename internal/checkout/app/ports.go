package app

import (
	"context"

	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

// CartItem is one cart line as checkout sees it.
type CartItem struct {
	ProductID int64
	Name      string
	UnitPrice money.Money
	Quantity  int
}

// Cart is the session's cart. Items returns a consistent snapshot; checkout
// writes to the cart only once, through Clear, after every record exists.
type Cart interface {
	Items() []CartItem
	Clear(ctx context.Context)
}

type CartReader interface {
	Cart(ctx context.Context, sessionID string) Cart
}

// Backend is the subset of the entity repository a checkout needs.
// Lookups of missing records return an error matching rest.ErrNotFound.
type Backend interface {
	GetProduct(ctx context.Context, id int64) (backend.Product, error)
	GetClient(ctx context.Context, id int64) (backend.Client, error)
	CreateClient(ctx context.Context, in backend.ClientInput) (backend.Client, error)
	GetAddress(ctx context.Context, id int64) (backend.Address, error)
	CreateAddress(ctx context.Context, in backend.AddressInput) (backend.Address, error)
	CreateBill(ctx context.Context, in backend.BillInput) (backend.Bill, error)
	CreateOrder(ctx context.Context, in backend.OrderInput) (backend.Order, error)
	CreateOrderLine(ctx context.Context, in backend.OrderLineInput) (backend.OrderLine, error)
}
