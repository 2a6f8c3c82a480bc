package paymentmethods

import (
	"context"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	"gorm.io/gorm"
)

// GormRepository exposes persistence operations for payment methods.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a payment method repository bound to the provided DB.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormRepository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &GormRepository{db: tx}
}

// CreateMethod inserts a card on file, populating its generated id.
func (r *GormRepository) CreateMethod(ctx context.Context, method *models.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

// CreateOwnership links a method to its owning user.
func (r *GormRepository) CreateOwnership(ctx context.Context, link *models.PaymentMethodOwnership) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// ListByUser returns every method owned by the user, oldest first.
func (r *GormRepository) ListByUser(ctx context.Context, userID int64) ([]models.PaymentMethod, error) {
	var rows []models.PaymentMethod
	err := r.db.WithContext(ctx).
		Joins("JOIN user_payment_methods ON user_payment_methods.payment_method_id = payment_methods.id").
		Where("user_payment_methods.user_id = ?", userID).
		Order("payment_methods.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IsOwner reports whether the user owns the method.
func (r *GormRepository) IsOwner(ctx context.Context, userID, methodID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PaymentMethodOwnership{}).
		Where("user_id = ? AND payment_method_id = ?", userID, methodID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteOwnership removes the ownership link and reports how many rows matched.
func (r *GormRepository) DeleteOwnership(ctx context.Context, userID, methodID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND payment_method_id = ?", userID, methodID).
		Delete(&models.PaymentMethodOwnership{})
	return res.RowsAffected, res.Error
}

// DeleteMethod removes the card record itself.
func (r *GormRepository) DeleteMethod(ctx context.Context, methodID int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", methodID).
		Delete(&models.PaymentMethod{}).Error
}
