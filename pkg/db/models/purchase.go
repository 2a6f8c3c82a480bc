package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is the immutable header of a committed purchase. Rows are never
// updated or deleted once written.
type Purchase struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          int64           `gorm:"column:user_id;not null;index"`
	Amount          decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	PurchasedAt     time.Time       `gorm:"column:purchased_at;not null"`
	PaymentMethodID int64           `gorm:"column:payment_method_id;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName implements gorm's Tabler.
func (Purchase) TableName() string {
	return "purchases"
}
