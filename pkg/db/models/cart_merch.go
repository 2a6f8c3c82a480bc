package models

import "time"

// CartMerch marks a merch article as pending purchase for a user. Quantity
// is only meaningful for merch; songs and albums are implicitly single.
type CartMerch struct {
	MerchID   int64     `gorm:"column:merch_id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName implements gorm's Tabler.
func (CartMerch) TableName() string {
	return "cart_merch"
}
