package catalog

import (
	"github.com/jngsolar/storefront-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// seedProducts returns the demo catalog loaded into an empty store.
func seedProducts() []models.Product {
	return []models.Product{
		{
			ID:          "p1",
			Name:        "Solar Panel 320W",
			Description: "High-efficiency monocrystalline panel",
			Price:       decimal.NewFromInt(189),
			Image:       "images/product1.jpg",
			Featured:    true,
		},
		{
			ID:          "p2",
			Name:        "Hybrid Inverter",
			Description: "Smart inverter with battery support",
			Price:       decimal.NewFromInt(499),
			Image:       "images/product2.jpg",
			Featured:    true,
		},
		{
			ID:          "p3",
			Name:        "4K Security Camera",
			Description: "Weatherproof 4K camera with night vision",
			Price:       decimal.NewFromInt(129),
			Image:       "images/product3.jpg",
			Featured:    true,
		},
		{
			ID:          "p4",
			Name:        "Battery 10kWh",
			Description: "Reliable energy storage for solar systems",
			Price:       decimal.NewFromInt(899),
			Image:       "images/product1.jpg",
			Featured:    false,
		},
	}
}
