package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a finalized order. IDs increase monotonically so both
// backends can satisfy the "strictly greater than all prior ids" rule.
type Purchase struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Email     string          `gorm:"column:email;not null" json:"email"`
	Address   string          `gorm:"column:address;not null" json:"address"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
