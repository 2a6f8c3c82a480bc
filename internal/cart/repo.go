package cart

import (
	"context"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	"gorm.io/gorm"
)

// GormRepository exposes persistence operations for the per-kind cart tables.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
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

// CreateSong inserts a pending song. The composite primary key rejects
// duplicates at the database level.
func (r *GormRepository) CreateSong(ctx context.Context, row *models.CartSong) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateAlbum inserts a pending album.
func (r *GormRepository) CreateAlbum(ctx context.Context, row *models.CartAlbum) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// CreateMerch inserts a pending merch article with its quantity.
func (r *GormRepository) CreateMerch(ctx context.Context, row *models.CartMerch) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// DeleteSong removes one pending song and reports how many rows matched.
func (r *GormRepository) DeleteSong(ctx context.Context, userID, songID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND song_id = ?", userID, songID).
		Delete(&models.CartSong{})
	return res.RowsAffected, res.Error
}

// DeleteAlbum removes one pending album and reports how many rows matched.
func (r *GormRepository) DeleteAlbum(ctx context.Context, userID, albumID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND album_id = ?", userID, albumID).
		Delete(&models.CartAlbum{})
	return res.RowsAffected, res.Error
}

// DeleteMerch removes one pending merch article and reports how many rows matched.
func (r *GormRepository) DeleteMerch(ctx context.Context, userID, merchID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND merch_id = ?", userID, merchID).
		Delete(&models.CartMerch{})
	return res.RowsAffected, res.Error
}

// DeleteSongs removes a batch of pending songs for the user.
func (r *GormRepository) DeleteSongs(ctx context.Context, userID int64, songIDs []int64) error {
	if len(songIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND song_id IN ?", userID, songIDs).
		Delete(&models.CartSong{}).Error
}

// DeleteAlbums removes a batch of pending albums for the user.
func (r *GormRepository) DeleteAlbums(ctx context.Context, userID int64, albumIDs []int64) error {
	if len(albumIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND album_id IN ?", userID, albumIDs).
		Delete(&models.CartAlbum{}).Error
}

// DeleteMerchBatch removes a batch of pending merch articles for the user.
func (r *GormRepository) DeleteMerchBatch(ctx context.Context, userID int64, merchIDs []int64) error {
	if len(merchIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND merch_id IN ?", userID, merchIDs).
		Delete(&models.CartMerch{}).Error
}

// ListSongs returns the user's pending songs, oldest first.
func (r *GormRepository) ListSongs(ctx context.Context, userID int64) ([]models.CartSong, error) {
	var rows []models.CartSong
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAlbums returns the user's pending albums, oldest first.
func (r *GormRepository) ListAlbums(ctx context.Context, userID int64) ([]models.CartAlbum, error) {
	var rows []models.CartAlbum
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListMerch returns the user's pending merch, oldest first.
func (r *GormRepository) ListMerch(ctx context.Context, userID int64) ([]models.CartMerch, error) {
	var rows []models.CartMerch
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
