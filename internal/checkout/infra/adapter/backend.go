package adapter

import (
	"context"

	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/backend/rest"
)

// RestBackend serves checkout's backend port from the REST entity repository.
type RestBackend struct {
	b *rest.Backend
}

func NewRestBackend(b *rest.Backend) *RestBackend {
	return &RestBackend{b: b}
}

func (r *RestBackend) GetProduct(ctx context.Context, id int64) (backend.Product, error) {
	return r.b.Products.Get(ctx, id)
}

func (r *RestBackend) GetClient(ctx context.Context, id int64) (backend.Client, error) {
	return r.b.Clients.Get(ctx, id)
}

func (r *RestBackend) CreateClient(ctx context.Context, in backend.ClientInput) (backend.Client, error) {
	return r.b.Clients.Create(ctx, in)
}

func (r *RestBackend) GetAddress(ctx context.Context, id int64) (backend.Address, error) {
	return r.b.Addresses.Get(ctx, id)
}

func (r *RestBackend) CreateAddress(ctx context.Context, in backend.AddressInput) (backend.Address, error) {
	return r.b.Addresses.Create(ctx, in)
}

func (r *RestBackend) CreateBill(ctx context.Context, in backend.BillInput) (backend.Bill, error) {
	return r.b.Bills.Create(ctx, in)
}

func (r *RestBackend) CreateOrder(ctx context.Context, in backend.OrderInput) (backend.Order, error) {
	return r.b.Orders.Create(ctx, in)
}

func (r *RestBackend) CreateOrderLine(ctx context.Context, in backend.OrderLineInput) (backend.OrderLine, error) {
	return r.b.OrderLines.Create(ctx, in)
}
