package controllers

import (
	"net/http"

	"github.com/jngsolar/storefront-backend/api/responses"
	"github.com/jngsolar/storefront-backend/api/validators"
	chatsvc "github.com/jngsolar/storefront-backend/internal/chat"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
	"github.com/jngsolar/storefront-backend/pkg/logger"
)

const chatMessageMaxLen = 2000

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func Chat(svc chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		var payload chatRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := validators.SanitizeString(payload.Message, chatMessageMaxLen)
		reply, err := svc.Reply(r.Context(), message)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, chatResponse{Reply: reply})
	}
}
