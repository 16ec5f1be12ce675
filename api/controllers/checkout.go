package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/api/middleware"
	"github.com/aurenecom/storefront-backend/api/responses"
	"github.com/aurenecom/storefront-backend/api/validators"
	"github.com/aurenecom/storefront-backend/internal/orders"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerName    string  `json:"customer_name" validate:"required,max=200"`
	CustomerEmail   string  `json:"customer_email" validate:"required,email"`
	CustomerPhone   *string `json:"customer_phone" validate:"omitempty,max=50"`
	CustomerAddress *string `json:"customer_address" validate:"omitempty,max=500"`
	Notes           *string `json:"notes" validate:"omitempty,max=2000"`
}

func (c checkoutRequest) toInput(deviceID string, userID *uuid.UUID) orders.CreateInput {
	return orders.CreateInput{
		DeviceID:        deviceID,
		UserID:          userID,
		CustomerName:    c.CustomerName,
		CustomerEmail:   c.CustomerEmail,
		CustomerPhone:   c.CustomerPhone,
		CustomerAddress: c.CustomerAddress,
		Notes:           c.Notes,
	}
}

// Checkout converts the device cart into an order. Guests check out with
// contact details only; authenticated callers get the order tied to their
// account.
func Checkout(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		deviceID, err := deviceIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id"))
				return
			}
			userID = &id
		}

		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), body.toInput(deviceID, userID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
