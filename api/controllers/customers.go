package controllers

import (
	"net/http"

	"github.com/aurenecom/storefront-backend/api/responses"
	"github.com/aurenecom/storefront-backend/api/validators"
	"github.com/aurenecom/storefront-backend/internal/customers"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

// CustomerMe returns the caller's customer profile.
func CustomerMe(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

type updateProfileRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,min=1,max=200"`
	Phone     *string `json:"phone" validate:"omitempty,max=50"`
	Address   *string `json:"address" validate:"omitempty,max=500"`
	NIF       *string `json:"nif" validate:"omitempty,max=50"`
	Community *string `json:"community" validate:"omitempty,max=100"`
}

func (u updateProfileRequest) toInput() customers.UpdateProfileDTO {
	return customers.UpdateProfileDTO{
		FullName:  u.FullName,
		Phone:     u.Phone,
		Address:   u.Address,
		NIF:       u.NIF,
		Community: u.Community,
	}
}

// CustomerUpdateMe lets the caller edit their own contact fields. Status
// and email stay admin-controlled.
func CustomerUpdateMe(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customers service unavailable"))
			return
		}

		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateOwnProfile(r.Context(), userID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}
