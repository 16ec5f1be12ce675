package controllers

import (
	"net/http"

	"github.com/aurenecom/storefront-backend/api/responses"
	"github.com/aurenecom/storefront-backend/api/validators"
	"github.com/aurenecom/storefront-backend/internal/push"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

type broadcastRequest struct {
	Title string            `json:"title" validate:"required,max=300"`
	Body  string            `json:"body" validate:"required,max=2000"`
	Data  map[string]string `json:"data"`
}

// AdminBroadcast sends a push notification to every registered device.
// Delivery is best effort; the response reports sent and failed counts.
func AdminBroadcast(svc push.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "push service unavailable"))
			return
		}

		var body broadcastRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Broadcast(r.Context(), push.Message{
			Title: body.Title,
			Body:  body.Body,
			Data:  body.Data,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
