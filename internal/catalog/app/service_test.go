package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dwikikusuma/shoping-storefront/internal/catalog/domain"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

type fakeRepo struct {
	products   []domain.Product
	categories []domain.Category
	reviews    []domain.Review
	listCalls  atomic.Int32
	listDelay  time.Duration
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: []domain.Product{
			{ID: 3, Name: "Desk Lamp", Price: money.MustParse("19.90"), Stock: 4, CategoryID: 2},
			{ID: 1, Name: "Keyboard", Price: money.MustParse("45.00"), Stock: 0, CategoryID: 1},
			{ID: 2, Name: "Mouse", Price: money.MustParse("12.50"), Stock: 10, CategoryID: 1},
			{ID: 4, Name: "Floor lamp", Price: money.MustParse("80.00"), Stock: 1, CategoryID: 2},
		},
		categories: []domain.Category{{ID: 1, Name: "Peripherals"}, {ID: 2, Name: "Lighting"}},
		reviews: []domain.Review{
			{ID: 1, Rating: 5, ProductID: 3},
			{ID: 2, Rating: 4, ProductID: 3},
			{ID: 3, Rating: 4, ProductID: 3},
			{ID: 4, Rating: 1, ProductID: 2},
		},
	}
}

func (f *fakeRepo) List(context.Context) ([]domain.Product, error) {
	f.listCalls.Add(1)
	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	out := make([]domain.Product, len(f.products))
	copy(out, f.products)
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
}

func (f *fakeRepo) Categories(context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeRepo) Reviews(context.Context) ([]domain.Review, error) {
	return f.reviews, nil
}

func ids(ps []domain.Product) []int64 {
	out := make([]int64, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestGetProductValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	t.Run("zero id -> invalid", func(t *testing.T) {
		_, err := svc.GetProduct(context.Background(), 0)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown id -> not found", func(t *testing.T) {
		_, err := svc.GetProduct(context.Background(), 99)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListProducts(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	t.Run("ordered by id with category names", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ListQuery{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fmt.Sprint(ids(page.Products)) != "[1 2 3 4]" {
			t.Fatalf("got %v", ids(page.Products))
		}
		if page.Products[2].CategoryName != "Lighting" || page.NextCursor != "" {
			t.Fatalf("unexpected page: %+v", page)
		}
	})

	t.Run("category and name filter", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ListQuery{CategoryID: 2, Query: "LAMP"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fmt.Sprint(ids(page.Products)) != "[3 4]" {
			t.Fatalf("got %v", ids(page.Products))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		first, err := svc.ListProducts(ctx, ListQuery{Limit: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fmt.Sprint(ids(first.Products)) != "[1 2 3]" || first.NextCursor != "3" {
			t.Fatalf("first page: %v cursor=%q", ids(first.Products), first.NextCursor)
		}
		second, err := svc.ListProducts(ctx, ListQuery{Limit: 3, Cursor: first.NextCursor})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fmt.Sprint(ids(second.Products)) != "[4]" || second.NextCursor != "" {
			t.Fatalf("second page: %v cursor=%q", ids(second.Products), second.NextCursor)
		}
	})

	t.Run("bad cursor -> invalid", func(t *testing.T) {
		_, err := svc.ListProducts(ctx, ListQuery{Cursor: "abc"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestListProductsSharesConcurrentLoads(t *testing.T) {
	repo := newFakeRepo()
	repo.listDelay = 50 * time.Millisecond
	svc := NewService(repo)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ListProducts(context.Background(), ListQuery{}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := repo.listCalls.Load(); n >= 10 {
		t.Fatalf("expected shared backend calls, got %d", n)
	}
}

func TestProductDetail(t *testing.T) {
	svc := NewService(newFakeRepo())

	d, err := svc.ProductDetail(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.Reviews) != 3 || d.AverageRating != 4.3 || d.CategoryName != "Lighting" {
		t.Fatalf("unexpected detail: %+v", d)
	}

	t.Run("no reviews", func(t *testing.T) {
		d, err := svc.ProductDetail(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Reviews == nil || d.AverageRating != 0 {
			t.Fatalf("unexpected detail: %+v", d)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		if _, err := svc.ProductDetail(context.Background(), 99); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
