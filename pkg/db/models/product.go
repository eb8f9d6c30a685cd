package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog listing. IDs are caller-chosen stable strings
// (the seed catalog uses p1..p4) rather than generated keys.
type Product struct {
	ID          string          `gorm:"column:id;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Description string          `gorm:"column:description;not null;default:''" json:"description"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Image       string          `gorm:"column:image;not null;default:''" json:"image"`
	Featured    bool            `gorm:"column:featured;not null;default:false" json:"featured"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
