package controllers

import (
	"net/http"

	"github.com/jngsolar/storefront-backend/api/responses"
	"github.com/jngsolar/storefront-backend/pkg/config"
)

type locationCard struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Hours   string `json:"hours"`
	MapURL  string `json:"map_url"`
}

// Location serves the static contact card. Values come from
// configuration so deployments can override them without a rebuild.
func Location(cfg config.LocationConfig) http.HandlerFunc {
	card := locationCard{
		Name:    cfg.Name,
		Address: cfg.Address,
		Phone:   cfg.Phone,
		Hours:   cfg.Hours,
		MapURL:  cfg.MapURL,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, card)
	}
}
