package app

import (
	"context"

	"github.com/dwikikusuma/shoping-storefront/internal/order/domain"
)

// OrderRepo reads orders and what hangs off them. Order and Bill return
// ErrNotFound for unknown ids.
type OrderRepo interface {
	Orders(ctx context.Context) ([]domain.Order, error)
	Order(ctx context.Context, id int64) (domain.Order, error)
	Items(ctx context.Context) ([]domain.OrderItem, error)
	Bill(ctx context.Context, id int64) (domain.Bill, error)
	Bills(ctx context.Context) ([]domain.Bill, error)
	ProductNames(ctx context.Context) (map[int64]string, error)
}
