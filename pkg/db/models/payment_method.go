package models

import "time"

// PaymentMethod stores a card-on-file reference. Card numbers arrive
// pre-masked from the client; a full PAN never reaches this system.
type PaymentMethod struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CardNumber  string    `gorm:"column:card_number;not null"`
	ExpireMonth int       `gorm:"column:expire_month;not null"`
	ExpireYear  int       `gorm:"column:expire_year;not null"`
	CardHolder  string    `gorm:"column:card_holder;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName implements gorm's Tabler.
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
