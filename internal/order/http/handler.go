package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/shoping-storefront/internal/httperr"
	"github.com/dwikikusuma/shoping-storefront/internal/order/app"
	"github.com/dwikikusuma/shoping-storefront/pkg/httpx"
)

// Handler serves a client's order history. It is mounted below a route
// carrying {clientID}.
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
	r.Get("/", h.ListOrders)
	r.Get("/{orderID}", h.GetOrder)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	clientID, err := httpx.IDParam(r, "clientID")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	orders, err := h.svc.ListByClient(r.Context(), clientID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	clientID, err := httpx.IDParam(r, "clientID")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	orderID, err := httpx.IDParam(r, "orderID")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	detail, err := h.svc.Detail(r.Context(), clientID, orderID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, detail)
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	clientID, err := httpx.IDParam(r, "clientID")
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	bills, err := h.svc.BillsByClient(r.Context(), clientID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, bills)
}
