package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
)

// Resource is the uniform CRUD contract of one backend collection. T is the
// entity as returned by the backend, In the body accepted by create and update.
type Resource[T, In any] struct {
	c        *Client
	endpoint string
}

func NewResource[T, In any](c *Client, endpoint string) *Resource[T, In] {
	return &Resource[T, In]{c: c, endpoint: endpoint}
}

// The backend wants a trailing slash on collection routes.
func (r *Resource[T, In]) collection() string { return r.endpoint + "/" }

func (r *Resource[T, In]) item(id domain.ID) string { return fmt.Sprintf("%s/%d", r.endpoint, id) }

func (r *Resource[T, In]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, http.MethodGet, r.collection(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T, In]) Get(ctx context.Context, id domain.ID) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodGet, r.item(id), nil, &out)
	return out, err
}

func (r *Resource[T, In]) Create(ctx context.Context, in In) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPost, r.collection(), in, &out)
	return out, err
}

func (r *Resource[T, In]) Update(ctx context.Context, id domain.ID, in In) (T, error) {
	var out T
	err := r.c.do(ctx, http.MethodPut, r.item(id), in, &out)
	return out, err
}

// Delete reports ErrNotFound for an id that is already gone; wrap with
// IgnoreNotFound when that should count as success.
func (r *Resource[T, In]) Delete(ctx context.Context, id domain.ID) error {
	return r.c.do(ctx, http.MethodDelete, r.item(id), nil, nil)
}

// Backend groups every collection the storefront talks to.
type Backend struct {
	Products   *Resource[domain.Product, domain.ProductInput]
	Categories *Resource[domain.Category, domain.CategoryInput]
	Clients    *Resource[domain.Client, domain.ClientInput]
	Addresses  *Resource[domain.Address, domain.AddressInput]
	Bills      *Resource[domain.Bill, domain.BillInput]
	Orders     *Resource[domain.Order, domain.OrderInput]
	OrderLines *Resource[domain.OrderLine, domain.OrderLineInput]
	Reviews    *Resource[domain.Review, domain.ReviewInput]
}

func NewBackend(c *Client) *Backend {
	return &Backend{
		Products:   NewResource[domain.Product, domain.ProductInput](c, "/products"),
		Categories: NewResource[domain.Category, domain.CategoryInput](c, "/categories"),
		Clients:    NewResource[domain.Client, domain.ClientInput](c, "/clients"),
		Addresses:  NewResource[domain.Address, domain.AddressInput](c, "/addresses"),
		Bills:      NewResource[domain.Bill, domain.BillInput](c, "/bills"),
		Orders:     NewResource[domain.Order, domain.OrderInput](c, "/orders"),
		OrderLines: NewResource[domain.OrderLine, domain.OrderLineInput](c, "/order_details"),
		Reviews:    NewResource[domain.Review, domain.ReviewInput](c, "/reviews"),
	}
}
