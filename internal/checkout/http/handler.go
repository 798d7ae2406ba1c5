package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	backend "github.com/dwikikusuma/shoping-storefront/internal/backend/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/checkout/app"
	"github.com/dwikikusuma/shoping-storefront/internal/checkout/domain"
	"github.com/dwikikusuma/shoping-storefront/internal/httperr"
	"github.com/dwikikusuma/shoping-storefront/internal/session"
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
	r.Get("/quote", h.Quote)
	r.Post("/", h.Checkout)
}

// enumField accepts an enumeration either by name ("CARD") or by its wire number (2).
type enumField string

func (e *enumField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*e = enumField(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*e = enumField(strconv.Itoa(n))
	return nil
}

// value resolves the field with parse; unknown names come back as -1 so
// validation reports them.
func (e enumField) value(parse func(string) (int, error)) int {
	if e == "" {
		return 0
	}
	if n, err := strconv.Atoi(string(e)); err == nil {
		return n
	}
	n, err := parse(string(e))
	if err != nil {
		return -1
	}
	return n
}

type CheckoutRequestDTO struct {
	ClientID       int64              `json:"client_id,omitempty"`
	Client         *domain.NewClient  `json:"client,omitempty"`
	AddressID      int64              `json:"address_id,omitempty"`
	Address        *domain.NewAddress `json:"address,omitempty"`
	PaymentType    enumField          `json:"payment_type"`
	DeliveryMethod enumField          `json:"delivery_method,omitempty"`
	Card           *domain.Card       `json:"card,omitempty"`
}

func (req CheckoutRequestDTO) draft() domain.Draft {
	return domain.Draft{
		ClientID:  req.ClientID,
		Client:    req.Client,
		AddressID: req.AddressID,
		Address:   req.Address,
		PaymentType: backend.PaymentType(req.PaymentType.value(func(s string) (int, error) {
			p, err := backend.ParsePaymentType(s)
			return int(p), err
		})),
		DeliveryMethod: backend.DeliveryMethod(req.DeliveryMethod.value(func(s string) (int, error) {
			d, err := backend.ParseDeliveryMethod(s)
			return int(d), err
		})),
		Card: req.Card,
	}
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	sessionID := session.ID(r.Context())
	if sessionID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "NO_SESSION", "missing session")
		return
	}

	q, err := h.svc.Quote(r.Context(), sessionID)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, q)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID := session.ID(r.Context())
	if sessionID == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "NO_SESSION", "missing session")
		return
	}

	var req CheckoutRequestDTO
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	res, err := h.svc.Checkout(r.Context(), sessionID, req.draft())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, res)
}
