package adapter

import (
	"context"

	"github.com/dwikikusuma/shoping-storefront/internal/cart/domain"
	catalogapp "github.com/dwikikusuma/shoping-storefront/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, id int64) (domain.Product, error) {
	p, err := r.svc.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.Stock,
		CategoryID: p.CategoryID,
	}, nil
}
