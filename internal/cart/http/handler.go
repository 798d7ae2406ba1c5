package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/shoping-storefront/internal/cart/app"
	"github.com/dwikikusuma/shoping-storefront/internal/httperr"
	"github.com/dwikikusuma/shoping-storefront/internal/session"
	"github.com/dwikikusuma/shoping-storefront/pkg/httpx"
)

type Handler struct {
	carts    *app.Registry
	products app.ProductReader
	log      *slog.Logger
	timeout  time.Duration
}

func NewHandler(carts *app.Registry, products app.ProductReader, log *slog.Logger, timeout time.Duration) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{carts: carts, products: products, log: log, timeout: timeout}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.GetCart)
	r.Delete("/", h.ClearCart)
	r.Post("/items", h.AddItem)
	r.Put("/items/{productID}", h.UpdateQuantity)
	r.Delete("/items/{productID}", h.RemoveItem)
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request) (*app.Store, bool) {
	id := session.ID(r.Context())
	if id == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "NO_SESSION", "missing session")
		return nil, false
	}
	return h.carts.Get(r.Context(), id), true
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	httpx.RespondJSON(w, http.StatusOK, s.Snapshot())
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}

	var req AddItemRequestDTO
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	if req.ProductID <= 0 {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "product_id must be positive")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, s.AddItem(r.Context(), product, req.Quantity))
}

func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	productID, err := httpx.IDParam(r, "productID")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	var req UpdateQuantityRequestDTO
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	// zero or less removes the line
	httpx.RespondJSON(w, http.StatusOK, s.UpdateQuantity(r.Context(), productID, req.Quantity))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	productID, err := httpx.IDParam(r, "productID")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	httpx.RespondJSON(w, http.StatusOK, s.RemoveItem(r.Context(), productID))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.store(w, r)
	if !ok {
		return
	}
	httpx.RespondJSON(w, http.StatusOK, s.Clear(r.Context()))
}
