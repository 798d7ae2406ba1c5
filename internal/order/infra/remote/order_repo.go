package remote

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/backend/rest"
	"github.com/dwikikusuma/shoping-storefront/internal/order/app"
	"github.com/dwikikusuma/shoping-storefront/internal/order/domain"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

type OrderRepo struct {
	b *rest.Backend
}

func NewOrderRepo(b *rest.Backend) *OrderRepo {
	return &OrderRepo{b: b}
}

func (r *OrderRepo) Orders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.b.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, o := range rows {
		out = append(out, toOrder(o))
	}
	return out, nil
}

func (r *OrderRepo) Order(ctx context.Context, id int64) (domain.Order, error) {
	o, err := r.b.Orders.Get(ctx, id)
	if errors.Is(err, rest.ErrNotFound) {
		return domain.Order{}, fmt.Errorf("order %d: %w", id, app.ErrNotFound)
	}
	if err != nil {
		return domain.Order{}, err
	}
	return toOrder(o), nil
}

func (r *OrderRepo) Items(ctx context.Context) ([]domain.OrderItem, error) {
	rows, err := r.b.OrderLines.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrderItem, 0, len(rows))
	for _, l := range rows {
		price := money.Zero
		if l.Price != nil {
			price = *l.Price
		}
		out = append(out, domain.OrderItem{
			ID:        l.ID,
			OrderID:   l.OrderID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: price,
		})
	}
	return out, nil
}

func (r *OrderRepo) Bill(ctx context.Context, id int64) (domain.Bill, error) {
	b, err := r.b.Bills.Get(ctx, id)
	if errors.Is(err, rest.ErrNotFound) {
		return domain.Bill{}, fmt.Errorf("bill %d: %w", id, app.ErrNotFound)
	}
	if err != nil {
		return domain.Bill{}, err
	}
	return toBill(b), nil
}

func (r *OrderRepo) Bills(ctx context.Context) ([]domain.Bill, error) {
	rows, err := r.b.Bills.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Bill, 0, len(rows))
	for _, b := range rows {
		out = append(out, toBill(b))
	}
	return out, nil
}

func (r *OrderRepo) ProductNames(ctx context.Context) (map[int64]string, error) {
	rows, err := r.b.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(rows))
	for _, p := range rows {
		names[p.ID] = p.Name
	}
	return names, nil
}

func toOrder(o backend.Order) domain.Order {
	return domain.Order{
		ID:             o.ID,
		Date:           o.Date,
		Total:          o.Total,
		Status:         o.Status.String(),
		DeliveryMethod: o.DeliveryMethod.String(),
		ClientID:       o.ClientID,
		BillID:         o.BillID,
	}
}

func toBill(b backend.Bill) domain.Bill {
	return domain.Bill{
		ID:          b.ID,
		Number:      b.BillNumber,
		Date:        b.Date,
		Total:       b.Total,
		PaymentType: b.PaymentType.String(),
		ClientID:    b.ClientID,
	}
}
