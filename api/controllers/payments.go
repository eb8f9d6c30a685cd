package controllers

import (
	"net/http"

	"github.com/jngsolar/storefront-backend/api/middleware"
	"github.com/jngsolar/storefront-backend/api/responses"
	paymentsvc "github.com/jngsolar/storefront-backend/internal/payments"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
	"github.com/jngsolar/storefront-backend/pkg/logger"
)

// CreateCheckoutSession redirects the session cart to the hosted
// payment gateway. When no gateway is configured the route answers
// with a dependency error instead of being absent, so the storefront
// gets a well-formed payload either way.
func CreateCheckoutSession(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeDependency, "payment gateway not configured"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		session, err := svc.CreateCheckoutSession(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}
