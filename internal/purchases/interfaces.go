package purchases

import (
	"context"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines the persistence surface for purchase headers and
// their per-kind line tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateHeader(ctx context.Context, header *models.Purchase) error
	AddSongs(ctx context.Context, purchaseID int64, songIDs []int64) error
	AddAlbums(ctx context.Context, purchaseID int64, albumIDs []int64) error
	AddMerch(ctx context.Context, lines []models.PurchaseMerch) error
	ListByUser(ctx context.Context, userID int64) ([]models.Purchase, error)
}
