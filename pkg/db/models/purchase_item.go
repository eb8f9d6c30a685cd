package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItem is a point-in-time snapshot of one cart line, decoupled
// from later product edits or deletions.
type PurchaseItem struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PurchaseID int64           `gorm:"column:purchase_id;not null;index" json:"purchase_id"`
	ProductID  string          `gorm:"column:product_id;not null" json:"product_id"`
	Name       string          `gorm:"column:name;not null" json:"name"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Qty        int             `gorm:"column:qty;not null" json:"qty"`
	Image      string          `gorm:"column:image;not null;default:''" json:"image"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
