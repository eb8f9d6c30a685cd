package controllers

import (
	"context"
	"net/http"

	"github.com/jngsolar/storefront-backend/api/responses"
	"github.com/jngsolar/storefront-backend/pkg/config"
	pkgerrors "github.com/jngsolar/storefront-backend/pkg/errors"
	"github.com/jngsolar/storefront-backend/pkg/logger"
)

// Pinger is any dependency the readiness probe should exercise.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each registered dependency. Nil entries are
// tolerated so callers can pass whatever backends are configured.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Storefront-Env", cfg.App.Env)

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
