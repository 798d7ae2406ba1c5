package app

import (
	"context"

	orderdomain "github.com/dwikikusuma/shoping-storefront/internal/order/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/profile/domain"
)

// ClientRepo reads and writes clients and their addresses. Get methods return
// ErrNotFound for unknown ids; DeleteAddress treats a missing address as deleted.
type ClientRepo interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id int64) (domain.Client, error)
	UpdateClient(ctx context.Context, c domain.Client) (domain.Client, error)

	ListAddresses(ctx context.Context) ([]domain.Address, error)
	GetAddress(ctx context.Context, id int64) (domain.Address, error)
	CreateAddress(ctx context.Context, a domain.Address) (domain.Address, error)
	UpdateAddress(ctx context.Context, a domain.Address) (domain.Address, error)
	DeleteAddress(ctx context.Context, id int64) error
}

type OrderHistory interface {
	ListByClient(ctx context.Context, clientID int64) ([]orderdomain.Order, error)
	BillsByClient(ctx context.Context, clientID int64) ([]orderdomain.Bill, error)
}
