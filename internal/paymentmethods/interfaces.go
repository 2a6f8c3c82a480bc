package paymentmethods

import (
	"context"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines the persistence surface for cards on file and their
// ownership links.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateMethod(ctx context.Context, method *models.PaymentMethod) error
	CreateOwnership(ctx context.Context, link *models.PaymentMethodOwnership) error
	ListByUser(ctx context.Context, userID int64) ([]models.PaymentMethod, error)
	IsOwner(ctx context.Context, userID, methodID int64) (bool, error)
	DeleteOwnership(ctx context.Context, userID, methodID int64) (int64, error)
	DeleteMethod(ctx context.Context, methodID int64) error
}
