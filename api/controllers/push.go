package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/api/middleware"
	"github.com/aurenecom/storefront-backend/api/responses"
	"github.com/aurenecom/storefront-backend/api/validators"
	"github.com/aurenecom/storefront-backend/internal/push"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

type registerTokenRequest struct {
	Token    string `json:"token" validate:"required,max=4096"`
	Platform string `json:"platform" validate:"required"`
}

// PushRegisterToken stores or refreshes a device token. When the caller is
// authenticated the token is attached to their account.
func PushRegisterToken(svc push.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "push service unavailable"))
			return
		}

		var body registerTokenRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var userID *uuid.UUID
		if raw := middleware.UserIDFromContext(r.Context()); raw != "" {
			if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
				userID = &id
			}
		}

		token, err := svc.Register(r.Context(), push.RegisterInput{
			Token:    body.Token,
			Platform: body.Platform,
			UserID:   userID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, token)
	}
}

type claimTokenRequest struct {
	Token string `json:"token" validate:"required,max=4096"`
}

// PushClaimToken attaches a previously anonymous token to the caller's
// account, typically right after login.
func PushClaimToken(svc push.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "push service unavailable"))
			return
		}

		userID, err := authenticatedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body claimTokenRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Claim(r.Context(), body.Token, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "claimed"})
	}
}

// PushUnregisterToken drops a device token, for example on logout or when
// the platform invalidates it.
func PushUnregisterToken(svc push.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "push service unavailable"))
			return
		}

		var body claimTokenRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Unregister(r.Context(), body.Token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "unregistered"})
	}
}
