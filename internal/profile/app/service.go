package app

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	orderdomain "github.com/dwikikusuma/shoping-storefront/internal/order/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/profile/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const streetNumberDefault = "S/N"

type Service struct {
	repo   ClientRepo
	orders OrderHistory
}

func NewService(repo ClientRepo, orders OrderHistory) *Service {
	return &Service{repo: repo, orders: orders}
}

func (s *Service) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID < clients[j].ID })
	return clients, nil
}

// Profile loads the client with addresses, orders and bills in parallel.
func (s *Service) Profile(ctx context.Context, clientID int64) (domain.Profile, error) {
	if clientID <= 0 {
		return domain.Profile{}, fmt.Errorf("client id must be positive: %w", ErrInvalidInput)
	}

	var p domain.Profile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p.Client, err = s.repo.GetClient(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		p.Addresses, err = s.addressesOf(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		p.Orders, err = s.orders.ListByClient(gctx, clientID)
		return err
	})
	g.Go(func() error {
		var err error
		p.Bills, err = s.orders.BillsByClient(gctx, clientID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Profile{}, err
	}

	if p.Orders == nil {
		p.Orders = []orderdomain.Order{}
	}
	if p.Bills == nil {
		p.Bills = []orderdomain.Bill{}
	}
	return p, nil
}

func (s *Service) Addresses(ctx context.Context, clientID int64) ([]domain.Address, error) {
	if clientID <= 0 {
		return nil, fmt.Errorf("client id must be positive: %w", ErrInvalidInput)
	}
	if _, err := s.repo.GetClient(ctx, clientID); err != nil {
		return nil, err
	}
	return s.addressesOf(ctx, clientID)
}

func (s *Service) addressesOf(ctx context.Context, clientID int64) ([]domain.Address, error) {
	all, err := s.repo.ListAddresses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Address, 0)
	for _, a := range all {
		if a.ClientID == clientID {
			out = append(out, a)
		}
	}
	return out, nil
}

// UpdateClient applies patch over the stored client and writes the result back whole.
func (s *Service) UpdateClient(ctx context.Context, clientID int64, patch domain.ClientPatch) (domain.Client, error) {
	c, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return domain.Client{}, err
	}

	apply(&c.Name, patch.Name)
	apply(&c.Lastname, patch.Lastname)
	apply(&c.Email, patch.Email)
	apply(&c.Telephone, patch.Telephone)

	if c.Name == "" || c.Lastname == "" {
		return domain.Client{}, fmt.Errorf("name and lastname are required: %w", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return domain.Client{}, fmt.Errorf("email is not valid: %w", ErrInvalidInput)
	}
	return s.repo.UpdateClient(ctx, c)
}

func (s *Service) AddAddress(ctx context.Context, clientID int64, street, number, city string) (domain.Address, error) {
	a := domain.Address{
		Street:   strings.TrimSpace(street),
		Number:   strings.TrimSpace(number),
		City:     strings.TrimSpace(city),
		ClientID: clientID,
	}
	if err := validAddress(&a); err != nil {
		return domain.Address{}, err
	}
	if _, err := s.repo.GetClient(ctx, clientID); err != nil {
		return domain.Address{}, err
	}
	return s.repo.CreateAddress(ctx, a)
}

func (s *Service) UpdateAddress(ctx context.Context, clientID, addressID int64, patch domain.AddressPatch) (domain.Address, error) {
	a, err := s.ownedAddress(ctx, clientID, addressID)
	if err != nil {
		return domain.Address{}, err
	}

	apply(&a.Street, patch.Street)
	apply(&a.Number, patch.Number)
	apply(&a.City, patch.City)

	if err := validAddress(&a); err != nil {
		return domain.Address{}, err
	}
	return s.repo.UpdateAddress(ctx, a)
}

func (s *Service) DeleteAddress(ctx context.Context, clientID, addressID int64) error {
	if _, err := s.ownedAddress(ctx, clientID, addressID); err != nil {
		return err
	}
	return s.repo.DeleteAddress(ctx, addressID)
}

// ownedAddress loads an address, reporting another client's address as not found.
func (s *Service) ownedAddress(ctx context.Context, clientID, addressID int64) (domain.Address, error) {
	if clientID <= 0 || addressID <= 0 {
		return domain.Address{}, fmt.Errorf("ids must be positive: %w", ErrInvalidInput)
	}
	a, err := s.repo.GetAddress(ctx, addressID)
	if err != nil {
		return domain.Address{}, err
	}
	if a.ClientID != clientID {
		return domain.Address{}, fmt.Errorf("address %d: %w", addressID, ErrNotFound)
	}
	return a, nil
}

func validAddress(a *domain.Address) error {
	if a.ClientID <= 0 {
		return fmt.Errorf("client id must be positive: %w", ErrInvalidInput)
	}
	if a.Street == "" || a.City == "" {
		return fmt.Errorf("street and city are required: %w", ErrInvalidInput)
	}
	if a.Number == "" {
		a.Number = streetNumberDefault
	}
	return nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
