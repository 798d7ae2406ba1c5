package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/backend/rest"
)

type fakeCart struct {
	mu      sync.Mutex
	items   []CartItem
	cleared bool
}

func (c *fakeCart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartItem(nil), c.items...)
}

func (c *fakeCart) Clear(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.cleared = true
}

type fakeCarts struct{ cart *fakeCart }

func (f fakeCarts) Cart(context.Context, string) Cart { return f.cart }

// fakeBackend records every call. fail maps an operation name to the error it returns.
type fakeBackend struct {
	mu        sync.Mutex
	nextID    int64
	products  map[int64]backend.Product
	clients   map[int64]backend.Client
	addresses map[int64]backend.Address
	fail      map[string]error
	// failLine makes the order line for this product fail.
	failLine int64
	// noAddressID makes CreateAddress answer without an id.
	noAddressID bool

	calls          []string
	createdClients []backend.ClientInput
	createdAddrs   []backend.AddressInput
	bills          []backend.BillInput
	orders         []backend.OrderInput
	lines          []backend.OrderLineInput
}

func newFakeBackend(products ...backend.Product) *fakeBackend {
	f := &fakeBackend{
		nextID:    100,
		products:  make(map[int64]backend.Product),
		clients:   make(map[int64]backend.Client),
		addresses: make(map[int64]backend.Address),
		fail:      make(map[string]error),
	}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func notFound(path string) error {
	return &rest.APIError{Status: http.StatusNotFound, Method: http.MethodGet, Path: path, Message: "Not found"}
}

func (f *fakeBackend) record(op string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
	if err := f.fail[op]; err != nil {
		return 0, err
	}
	f.nextID++
	return f.nextID, nil
}

func (f *fakeBackend) creations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.createdClients) + len(f.createdAddrs) + len(f.bills) + len(f.orders) + len(f.lines)
}

func (f *fakeBackend) GetProduct(_ context.Context, id int64) (backend.Product, error) {
	if _, err := f.record("get-product"); err != nil {
		return backend.Product{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return backend.Product{}, notFound(fmt.Sprintf("/products/%d", id))
	}
	return p, nil
}

func (f *fakeBackend) GetClient(_ context.Context, id int64) (backend.Client, error) {
	if _, err := f.record("get-client"); err != nil {
		return backend.Client{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.clients[id]
	if !ok {
		return backend.Client{}, notFound(fmt.Sprintf("/clients/%d", id))
	}
	return c, nil
}

func (f *fakeBackend) CreateClient(_ context.Context, in backend.ClientInput) (backend.Client, error) {
	id, err := f.record("client")
	if err != nil {
		return backend.Client{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdClients = append(f.createdClients, in)
	return backend.Client{ID: id, Name: in.Name, Lastname: in.Lastname, Email: in.Email, Telephone: in.Telephone}, nil
}

func (f *fakeBackend) GetAddress(_ context.Context, id int64) (backend.Address, error) {
	if _, err := f.record("get-address"); err != nil {
		return backend.Address{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.addresses[id]
	if !ok {
		return backend.Address{}, notFound(fmt.Sprintf("/addresses/%d", id))
	}
	return a, nil
}

func (f *fakeBackend) CreateAddress(_ context.Context, in backend.AddressInput) (backend.Address, error) {
	id, err := f.record("address")
	if err != nil {
		return backend.Address{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdAddrs = append(f.createdAddrs, in)
	if f.noAddressID {
		id = 0
	}
	return backend.Address{ID: id, Street: in.Street, Number: in.Number, City: in.City, ClientID: in.ClientID}, nil
}

func (f *fakeBackend) CreateBill(_ context.Context, in backend.BillInput) (backend.Bill, error) {
	id, err := f.record("bill")
	if err != nil {
		return backend.Bill{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bills = append(f.bills, in)
	return backend.Bill{ID: id, BillNumber: in.BillNumber, Date: in.Date, Total: in.Total, PaymentType: in.PaymentType, ClientID: in.ClientID}, nil
}

func (f *fakeBackend) CreateOrder(_ context.Context, in backend.OrderInput) (backend.Order, error) {
	id, err := f.record("order")
	if err != nil {
		return backend.Order{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = append(f.orders, in)
	return backend.Order{ID: id, Date: in.Date, Total: in.Total, DeliveryMethod: in.DeliveryMethod, Status: in.Status, ClientID: in.ClientID, BillID: in.BillID}, nil
}

func (f *fakeBackend) CreateOrderLine(_ context.Context, in backend.OrderLineInput) (backend.OrderLine, error) {
	id, err := f.record("line")
	if err != nil {
		return backend.OrderLine{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.ProductID == f.failLine {
		return backend.OrderLine{}, &rest.APIError{Status: http.StatusInternalServerError, Method: http.MethodPost, Path: "/order_details/", Message: "database is locked"}
	}
	f.lines = append(f.lines, in)
	price := in.Price
	return backend.OrderLine{ID: id, Quantity: in.Quantity, Price: &price, OrderID: in.OrderID, ProductID: in.ProductID}, nil
}
