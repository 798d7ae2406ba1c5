package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/shoping-storefront/internal/catalog/app"
	"github.com/dwikikusuma/shoping-storefront/internal/httperr"
	"github.com/dwikikusuma/shoping-storefront/pkg/httpx"
)

type Handler struct {
	svc *app.Service
	log *slog.Logger
}

func NewHandler(svc *app.Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/products/{productID}", h.GetProduct)
	r.Get("/categories", h.ListCategories)
}

// ListProducts accepts category_id, q, limit and cursor query parameters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q := app.ListQuery{
		Query:  qs.Get("q"),
		Cursor: qs.Get("cursor"),
	}

	if v := qs.Get("category_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "category_id must be a positive integer")
			return
		}
		q.CategoryID = id
	}
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "limit must be a non-negative integer")
			return
		}
		q.Limit = n
	}

	page, err := h.svc.ListProducts(r.Context(), q)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, page)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "productID")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	detail, err := h.svc.ProductDetail(r.Context(), id)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, detail)
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cs, err := h.svc.ListCategories(r.Context())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, cs)
}
