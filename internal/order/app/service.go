package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/shoping-storefront/internal/order/domain"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

// ListByClient returns the client's orders, newest first.
func (s *Service) ListByClient(ctx context.Context, clientID int64) ([]domain.Order, error) {
	if clientID <= 0 {
		return nil, fmt.Errorf("client id must be positive: %w", ErrInvalidInput)
	}

	all, err := s.repo.Orders(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0)
	for _, o := range all {
		if o.ClientID == clientID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].Date != orders[j].Date {
			return orders[i].Date > orders[j].Date
		}
		return orders[i].ID > orders[j].ID
	})
	return orders, nil
}

// BillsByClient returns the client's bills, newest first.
func (s *Service) BillsByClient(ctx context.Context, clientID int64) ([]domain.Bill, error) {
	if clientID <= 0 {
		return nil, fmt.Errorf("client id must be positive: %w", ErrInvalidInput)
	}

	all, err := s.repo.Bills(ctx)
	if err != nil {
		return nil, err
	}

	bills := make([]domain.Bill, 0)
	for _, b := range all {
		if b.ClientID == clientID {
			bills = append(bills, b)
		}
	}
	sort.Slice(bills, func(i, j int) bool {
		if bills[i].Date != bills[j].Date {
			return bills[i].Date > bills[j].Date
		}
		return bills[i].ID > bills[j].ID
	})
	return bills, nil
}

// Detail returns one of the client's orders with its lines and bill. An order
// of another client is reported as not found.
func (s *Service) Detail(ctx context.Context, clientID, orderID int64) (domain.OrderDetail, error) {
	if clientID <= 0 || orderID <= 0 {
		return domain.OrderDetail{}, fmt.Errorf("ids must be positive: %w", ErrInvalidInput)
	}

	var (
		order domain.Order
		items []domain.OrderItem
		names map[int64]string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = s.repo.Order(gctx, orderID)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.repo.Items(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		names, err = s.repo.ProductNames(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.OrderDetail{}, err
	}
	if order.ClientID != clientID {
		return domain.OrderDetail{}, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	detail := domain.OrderDetail{Order: order, Items: []domain.OrderItem{}, ItemsTotal: money.Zero}
	for _, it := range items {
		if it.OrderID != orderID {
			continue
		}
		it.Name = names[it.ProductID]
		it.LineTotal = it.UnitPrice.Mul(it.Quantity)
		detail.Items = append(detail.Items, it)
		detail.ItemsTotal = detail.ItemsTotal.Add(it.LineTotal)
	}

	if order.BillID > 0 {
		bill, err := s.repo.Bill(ctx, order.BillID)
		switch {
		case errors.Is(err, ErrNotFound):
			// the order outlived its bill; show it without one
		case err != nil:
			return domain.OrderDetail{}, err
		default:
			detail.Bill = &bill
		}
	}
	return detail, nil
}
