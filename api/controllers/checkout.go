package controllers

import (
	"net/http"

	"github.com/jngsolar/storefront-backend/api/middleware"
	"github.com/jngsolar/storefront-backend/api/responses"
	"github.com/jngsolar/storefront-backend/api/validators"
	checkoutsvc "github.com/jngsolar/storefront-backend/internal/checkout"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
	"github.com/jngsolar/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
}

func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		receipt, err := svc.Checkout(r.Context(), sessionID, checkoutsvc.Input{
			Name:    payload.Name,
			Email:   payload.Email,
			Address: payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, receipt)
	}
}
