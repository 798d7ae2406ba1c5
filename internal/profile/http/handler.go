package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/shoping-storefront/internal/httperr"
	"github.com/dwikikusuma/shoping-storefront/internal/profile/app"
	"github.com/dwikikusuma/shoping-storefront/internal/profile/domain"
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

type AddressRequestDTO struct {
	Street string `json:"street"`
	Number string `json:"number"`
	City   string `json:"city"`
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListClients)
	r.Get("/{clientID}", h.GetProfile)
	r.Put("/{clientID}", h.UpdateClient)
	r.Get("/{clientID}/addresses", h.ListAddresses)
	r.Post("/{clientID}/addresses", h.AddAddress)
	r.Put("/{clientID}/addresses/{addressID}", h.UpdateAddress)
	r.Delete("/{clientID}/addresses/{addressID}", h.DeleteAddress)
}

func (h *Handler) ids(w http.ResponseWriter, r *http.Request, names ...string) ([]int64, bool) {
	out := make([]int64, 0, len(names))
	for _, n := range names {
		id, err := httpx.IDParam(r, n)
		if err != nil {
			httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return nil, false
		}
		out = append(out, id)
	}
	return out, true
}

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.svc.ListClients(r.Context())
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, clients)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.ids(w, r, "clientID")
	if !ok {
		return
	}
	p, err := h.svc.Profile(r.Context(), ids[0])
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, p)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.ids(w, r, "clientID")
	if !ok {
		return
	}
	var patch domain.ClientPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	c, err := h.svc.UpdateClient(r.Context(), ids[0], patch)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, c)
}

func (h *Handler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.ids(w, r, "clientID")
	if !ok {
		return
	}
	list, err := h.svc.Addresses(r.Context(), ids[0])
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, list)
}

func (h *Handler) AddAddress(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.ids(w, r, "clientID")
	if !ok {
		return
	}
	var req AddressRequestDTO
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	a, err := h.svc.AddAddress(r.Context(), ids[0], req.Street, req.Number, req.City)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusCreated, a)
}

func (h *Handler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.ids(w, r, "clientID", "addressID")
	if !ok {
		return
	}
	var patch domain.AddressPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}
	a, err := h.svc.UpdateAddress(r.Context(), ids[0], ids[1], patch)
	if err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	httpx.RespondJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.ids(w, r, "clientID", "addressID")
	if !ok {
		return
	}
	if err := h.svc.DeleteAddress(r.Context(), ids[0], ids[1]); err != nil {
		httperr.Write(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
