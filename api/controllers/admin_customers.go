package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aurenecom/storefront-backend/api/responses"
	"github.com/aurenecom/storefront-backend/api/validators"
	"github.com/aurenecom/storefront-backend/internal/customers"
	"github.com/aurenecom/storefront-backend/pkg/enums"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

// AdminListCustomers pages through customer profiles for the back office.
func AdminListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		cursor := r.URL.Query().Get("cursor")
		limit, _ := validators.ParseQueryInt(r, "limit", 50, 1, 200)

		page, err := svc.ListCustomers(r.Context(), cursor, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

type setCustomerStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminSetCustomerStatus moves a customer through the approval lifecycle.
// The transition is recorded and fanned out so the customer gets notified.
func AdminSetCustomerStatus(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		actorID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := validators.ParseUUIDParam(chi.URLParam(r, "customerID"), "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body setCustomerStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseCustomerStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		profile, err := svc.SetStatus(r.Context(), customers.SetStatusInput{
			CustomerID:  customerID,
			Status:      status,
			ActorUserID: actorID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// AdminDeleteCustomer removes a customer profile and its identity.
func AdminDeleteCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		customerID, err := validators.ParseUUIDParam(chi.URLParam(r, "customerID"), "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCustomer(r.Context(), customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
