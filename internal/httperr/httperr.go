// Package httperr maps service errors to HTTP responses in one place so every
// handler reports the same failure the same way.
package httperr

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dwikikusuma/shoping-storefront/internal/backend/rest"
	catalogapp "github.com/dwikikusuma/shoping-storefront/internal/catalog/app"
	checkout "github.com/dwikikusuma/shoping-storefront/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/shoping-storefront/internal/order/app"
	profileapp "github.com/dwikikusuma/shoping-storefront/internal/profile/app"
	"github.com/dwikikusuma/shoping-storefront/pkg/httpx"
)

type stageDetails struct {
	Stage   checkout.Stage `json:"stage"`
	Message string         `json:"message"`
}

// FromError returns the status, the machine readable code and the message to show.
func FromError(err error) (int, string, string) {
	var (
		verr   *checkout.ValidationError
		serr   *checkout.StageError
		apiErr *rest.APIError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, "VALIDATION_FAILED", "the order cannot be submitted"
	case errors.As(err, &serr):
		return http.StatusBadGateway, "CHECKOUT_FAILED", serr.Message
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusConflict, "EMPTY_CART", "cart is empty"
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		return http.StatusConflict, "CHECKOUT_IN_PROGRESS", "a checkout for this cart is already in progress"
	case errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, profileapp.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, catalogapp.ErrNotFound),
		errors.Is(err, orderapp.ErrNotFound),
		errors.Is(err, profileapp.ErrNotFound),
		errors.Is(err, rest.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "not found"
	case errors.Is(err, rest.ErrUnavailable), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "UNAVAILABLE", "the store backend is temporarily unavailable"
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "BACKEND_ERROR", apiErr.Message
	default:
		return http.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

// Write logs err and sends the mapped response. Validation problems and the
// failed checkout stage are returned as details.
func Write(w http.ResponseWriter, log *slog.Logger, err error) {
	status, code, msg := FromError(err)

	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.String("code", code), slog.Any("err", err))
	} else {
		log.Info("request rejected", slog.String("code", code), slog.Any("err", err))
	}

	var (
		verr *checkout.ValidationError
		serr *checkout.StageError
	)
	switch {
	case errors.As(err, &verr):
		httpx.RespondErrorDetails(w, status, code, msg, verr.Problems)
	case errors.As(err, &serr):
		httpx.RespondErrorDetails(w, status, code, msg, stageDetails{Stage: serr.Stage, Message: serr.Message})
	default:
		httpx.RespondError(w, status, code, msg)
	}
}
