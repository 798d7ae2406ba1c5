package remote

import (
	"context"
	"errors"
	"fmt"

	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/backend/rest"
	"github.com/dwikikusuma/shoping-storefront/internal/profile/app"
	"github.com/dwikikusuma/shoping-storefront/internal/profile/domain"
)

var _ app.ClientRepo = (*ClientRepo)(nil)

type ClientRepo struct {
	b *rest.Backend
}

func NewClientRepo(b *rest.Backend) *ClientRepo {
	return &ClientRepo{b: b}
}

func notFound(err error, what string, id int64) error {
	if errors.Is(err, rest.ErrNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, app.ErrNotFound)
	}
	return err
}

func (r *ClientRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.b.Clients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Client, 0, len(rows))
	for _, c := range rows {
		out = append(out, toClient(c))
	}
	return out, nil
}

func (r *ClientRepo) GetClient(ctx context.Context, id int64) (domain.Client, error) {
	c, err := r.b.Clients.Get(ctx, id)
	if err != nil {
		return domain.Client{}, notFound(err, "client", id)
	}
	return toClient(c), nil
}

func (r *ClientRepo) UpdateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	out, err := r.b.Clients.Update(ctx, c.ID, backend.ClientInput{
		Name:      c.Name,
		Lastname:  c.Lastname,
		Email:     c.Email,
		Telephone: c.Telephone,
	})
	if err != nil {
		return domain.Client{}, notFound(err, "client", c.ID)
	}
	return toClient(out), nil
}

func (r *ClientRepo) ListAddresses(ctx context.Context) ([]domain.Address, error) {
	rows, err := r.b.Addresses.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Address, 0, len(rows))
	for _, a := range rows {
		out = append(out, toAddress(a))
	}
	return out, nil
}

func (r *ClientRepo) GetAddress(ctx context.Context, id int64) (domain.Address, error) {
	a, err := r.b.Addresses.Get(ctx, id)
	if err != nil {
		return domain.Address{}, notFound(err, "address", id)
	}
	return toAddress(a), nil
}

func (r *ClientRepo) CreateAddress(ctx context.Context, a domain.Address) (domain.Address, error) {
	out, err := r.b.Addresses.Create(ctx, addressInput(a))
	if err != nil {
		return domain.Address{}, err
	}
	return toAddress(out), nil
}

func (r *ClientRepo) UpdateAddress(ctx context.Context, a domain.Address) (domain.Address, error) {
	out, err := r.b.Addresses.Update(ctx, a.ID, addressInput(a))
	if err != nil {
		return domain.Address{}, notFound(err, "address", a.ID)
	}
	return toAddress(out), nil
}

func (r *ClientRepo) DeleteAddress(ctx context.Context, id int64) error {
	return rest.IgnoreNotFound(r.b.Addresses.Delete(ctx, id))
}

func addressInput(a domain.Address) backend.AddressInput {
	return backend.AddressInput{Street: a.Street, Number: a.Number, City: a.City, ClientID: a.ClientID}
}

func toClient(c backend.Client) domain.Client {
	return domain.Client{ID: c.ID, Name: c.Name, Lastname: c.Lastname, Email: c.Email, Telephone: c.Telephone}
}

func toAddress(a backend.Address) domain.Address {
	return domain.Address{ID: a.ID, Street: a.Street, Number: a.Number, City: a.City, ClientID: a.ClientID}
}
