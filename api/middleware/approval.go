package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/aurenecom/storefront-backend/api/responses"
	"github.com/aurenecom/storefront-backend/internal/customers"
	pkgerrors "github.com/aurenecom/storefront-backend/pkg/errors"
	"github.com/aurenecom/storefront-backend/pkg/logger"
)

// RequireApproved gates a route on the caller's customer status. Guests pass
// through untouched; an authenticated caller needs an approved account, and
// an unreadable status fails closed.
func RequireApproved(resolver *customers.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw := UserIDFromContext(ctx)
			userID, err := uuid.Parse(raw)
			if err != nil || userID == uuid.Nil {
				next.ServeHTTP(w, r)
				return
			}

			resolution := resolver.Resolve(ctx, &userID)

			switch customers.Evaluate(true, resolution) {
			case customers.DecisionApproved:
				next.ServeHTTP(w, r)
			case customers.DecisionPending:
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account pending approval"))
			case customers.DecisionBlocked:
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "account not allowed to order"))
			case customers.DecisionLoading:
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "account status unavailable"))
			default:
				// Unknown status fails closed to re-authentication.
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "account status unknown, sign in again"))
			}
		})
	}
}
