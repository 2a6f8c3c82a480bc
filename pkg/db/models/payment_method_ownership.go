package models

// PaymentMethodOwnership links a user to a payment method. Physically N:M,
// though in practice each method has a single owner.
type PaymentMethodOwnership struct {
	UserID          int64 `gorm:"column:user_id;primaryKey"`
	PaymentMethodID int64 `gorm:"column:payment_method_id;primaryKey"`
}

// TableName implements gorm's Tabler.
func (PaymentMethodOwnership) TableName() string {
	return "user_payment_methods"
}
