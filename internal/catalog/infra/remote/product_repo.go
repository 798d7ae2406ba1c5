package remote

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/backend/rest"
	"github.com/dwikikusuma/shoping-storefront/internal/catalog/app"
	"github.com/dwikikusuma/shoping-storefront/internal/catalog/domain"
)

type ProductRepo struct {
	b *rest.Backend
}

func NewProductRepo(b *rest.Backend) *ProductRepo {
	return &ProductRepo{b: b}
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.b.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, p := range rows {
		out = append(out, toProduct(p))
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (domain.Product, error) {
	p, err := r.b.Products.Get(ctx, id)
	if errors.Is(err, rest.ErrNotFound) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, app.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, err
	}
	return toProduct(p), nil
}

func (r *ProductRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.b.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, c := range rows {
		out = append(out, domain.Category{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (r *ProductRepo) Reviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.b.Reviews.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(rows))
	for _, rv := range rows {
		out = append(out, domain.Review{ID: rv.ID, Rating: rv.Rating, Comment: rv.Comment, ProductID: rv.ProductID})
	}
	return out, nil
}

func toProduct(p backend.Product) domain.Product {
	return domain.Product{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.Stock,
		CategoryID: p.CategoryID,
	}
}
