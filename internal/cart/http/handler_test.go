package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/shoping-storefront/internal/cart/app"
	"github.com/dwikikusuma/shoping-storefront/internal/cart/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/cart/infra/memory"
	catalogapp "github.com/dwikikusuma/shoping-storefront/internal/catalog/app"
	"github.com/dwikikusuma/shoping-storefront/internal/session"
	"github.com/dwikikusuma/shoping-storefront/pkg/money"
)

type fakeProducts map[int64]domain.Product

func (f fakeProducts) GetProduct(_ context.Context, id int64) (domain.Product, error) {
	p, ok := f[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, catalogapp.ErrNotFound)
	}
	return p, nil
}

func newRouter() http.Handler {
	products := fakeProducts{
		1: {ID: 1, Name: "Mug", Price: money.MustParse("10.00"), Stock: 5},
		2: {ID: 2, Name: "Book", Price: money.MustParse("15.00"), Stock: 3},
	}
	h := NewHandler(app.NewRegistry(memory.NewPersister(), nil), products, nil, 5*time.Second)

	r := chi.NewRouter()
	r.Use(session.Middleware)
	r.Route("/api/v1/cart", h.Routes)
	return r
}

func call(t *testing.T, r http.Handler, method, path, body string) (int, domain.Snapshot) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(session.HeaderName, "test-session")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var snap domain.Snapshot
	if rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	}
	return rec.Code, snap
}

func TestCartEndpoints(t *testing.T) {
	r := newRouter()

	code, snap := call(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 2, snap.ItemCount)

	code, snap = call(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":2}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, 3, snap.ItemCount, "missing quantity counts as one")
	assert.Equal(t, "35.00", snap.Subtotal.String())

	code, snap = call(t, r, http.MethodPut, "/api/v1/cart/items/1", `{"quantity":4}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5, snap.ItemCount)

	code, snap = call(t, r, http.MethodPut, "/api/v1/cart/items/2", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, code)
	_, ok := snap.Line(2)
	assert.False(t, ok)

	code, snap = call(t, r, http.MethodGet, "/api/v1/cart/", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, snap.Lines, 1)

	code, snap = call(t, r, http.MethodDelete, "/api/v1/cart/items/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.True(t, snap.Empty())

	call(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`)
	code, snap = call(t, r, http.MethodDelete, "/api/v1/cart/", "")
	require.Equal(t, http.StatusOK, code)
	assert.Zero(t, snap.ItemCount)
	assert.True(t, snap.Subtotal.IsZero())
}

func TestCartEndpoints_Errors(t *testing.T) {
	r := newRouter()

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"unknown product", http.MethodPost, "/api/v1/cart/items", `{"product_id":99}`, http.StatusNotFound},
		{"missing product id", http.MethodPost, "/api/v1/cart/items", `{"quantity":1}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/api/v1/cart/items", `{`, http.StatusBadRequest},
		{"bad path id", http.MethodPut, "/api/v1/cart/items/abc", `{"quantity":1}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := call(t, r, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, code)
		})
	}
}
