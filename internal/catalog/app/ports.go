package app

import (
	"context"

	"github.com/dwikikusuma/shoping-storefront/internal/catalog/domain"
)

// ProductRepo reads the catalog. Get returns ErrNotFound for unknown ids.
type ProductRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	Reviews(ctx context.Context) ([]domain.Review, error)
}
