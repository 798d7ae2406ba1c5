package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dwikikusuma/shoping-storefront/internal/order/domain"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

type fakeRepo struct {
	orders []domain.Order
	items  []domain.OrderItem
	bills  []domain.Bill
}

func (f fakeRepo) Orders(context.Context) ([]domain.Order, error) { return f.orders, nil }
func (f fakeRepo) Order(_ context.Context, id int64) (domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
}
func (f fakeRepo) Items(context.Context) ([]domain.OrderItem, error) { return f.items, nil }
func (f fakeRepo) Bill(_ context.Context, id int64) (domain.Bill, error) {
	for _, b := range f.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Bill{}, ErrNotFound
}
func (f fakeRepo) Bills(context.Context) ([]domain.Bill, error) { return f.bills, nil }
func (f fakeRepo) ProductNames(context.Context) (map[int64]string, error) {
	return map[int64]string{1: "Keyboard", 2: "Mouse"}, nil
}

func testRepo() fakeRepo {
	return fakeRepo{
		orders: []domain.Order{
			{ID: 1, Date: "2026-01-10", ClientID: 7, BillID: 50},
			{ID: 2, Date: "2026-02-01", ClientID: 7, BillID: 99},
			{ID: 3, Date: "2026-02-01", ClientID: 8},
			{ID: 4, Date: "2026-02-01", ClientID: 7},
		},
		items: []domain.OrderItem{
			{ID: 10, OrderID: 1, ProductID: 1, Quantity: 2, UnitPrice: money.MustParse("10.00")},
			{ID: 11, OrderID: 1, ProductID: 2, Quantity: 1, UnitPrice: money.MustParse("15.00")},
			{ID: 12, OrderID: 2, ProductID: 2, Quantity: 1, UnitPrice: money.MustParse("15.00")},
		},
		bills: []domain.Bill{{ID: 50, Number: "FAC-1-1", ClientID: 7}},
	}
}

func TestListByClient(t *testing.T) {
	svc := NewService(testRepo())

	orders, err := svc.ListByClient(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []int64
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	if fmt.Sprint(ids) != "[4 2 1]" {
		t.Fatalf("expected newest first [4 2 1], got %v", ids)
	}

	t.Run("invalid client id", func(t *testing.T) {
		if _, err := svc.ListByClient(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestDetail(t *testing.T) {
	svc := NewService(testRepo())

	t.Run("lines joined with names and bill", func(t *testing.T) {
		d, err := svc.Detail(context.Background(), 7, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(d.Items) != 2 || d.Items[0].Name != "Keyboard" {
			t.Fatalf("unexpected items: %+v", d.Items)
		}
		if d.ItemsTotal.String() != "35.00" {
			t.Fatalf("items total = %s", d.ItemsTotal)
		}
		if d.Bill == nil || d.Bill.Number != "FAC-1-1" {
			t.Fatalf("bill missing: %+v", d.Bill)
		}
	})

	t.Run("missing bill is tolerated", func(t *testing.T) {
		d, err := svc.Detail(context.Background(), 7, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Bill != nil {
			t.Fatalf("expected no bill")
		}
	})

	t.Run("order of another client -> not found", func(t *testing.T) {
		if _, err := svc.Detail(context.Background(), 7, 3); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown order -> not found", func(t *testing.T) {
		if _, err := svc.Detail(context.Background(), 7, 404); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestBillsByClient(t *testing.T) {
	bills, err := NewService(testRepo()).BillsByClient(context.Background(), 7)
	if err != nil || len(bills) != 1 {
		t.Fatalf("got %v, %v", bills, err)
	}
}
