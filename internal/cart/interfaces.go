package cart

import (
	"context"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines the persistence surface required by the cart service.
// Each product family lives in its own table, so the operations come in
// threes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateSong(ctx context.Context, row *models.CartSong) error
	CreateAlbum(ctx context.Context, row *models.CartAlbum) error
	CreateMerch(ctx context.Context, row *models.CartMerch) error

	DeleteSong(ctx context.Context, userID, songID int64) (int64, error)
	DeleteAlbum(ctx context.Context, userID, albumID int64) (int64, error)
	DeleteMerch(ctx context.Context, userID, merchID int64) (int64, error)

	DeleteSongs(ctx context.Context, userID int64, songIDs []int64) error
	DeleteAlbums(ctx context.Context, userID int64, albumIDs []int64) error
	DeleteMerchBatch(ctx context.Context, userID int64, merchIDs []int64) error

	ListSongs(ctx context.Context, userID int64) ([]models.CartSong, error)
	ListAlbums(ctx context.Context, userID int64) ([]models.CartAlbum, error)
	ListMerch(ctx context.Context, userID int64) ([]models.CartMerch, error)
}
