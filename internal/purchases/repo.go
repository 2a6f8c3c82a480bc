package purchases

import (
	"context"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	"gorm.io/gorm"
)

// GormRepository exposes persistence operations for committed purchases.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a purchase repository bound to the provided DB.
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

// CreateHeader inserts the purchase header, populating its generated id.
func (r *GormRepository) CreateHeader(ctx context.Context, header *models.Purchase) error {
	return r.db.WithContext(ctx).Create(header).Error
}

// AddSongs inserts the song lines for a purchase.
func (r *GormRepository) AddSongs(ctx context.Context, purchaseID int64, songIDs []int64) error {
	if len(songIDs) == 0 {
		return nil
	}
	lines := make([]models.PurchaseSong, 0, len(songIDs))
	for _, id := range songIDs {
		lines = append(lines, models.PurchaseSong{PurchaseID: purchaseID, SongID: id})
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// AddAlbums inserts the album lines for a purchase.
func (r *GormRepository) AddAlbums(ctx context.Context, purchaseID int64, albumIDs []int64) error {
	if len(albumIDs) == 0 {
		return nil
	}
	lines := make([]models.PurchaseAlbum, 0, len(albumIDs))
	for _, id := range albumIDs {
		lines = append(lines, models.PurchaseAlbum{PurchaseID: purchaseID, AlbumID: id})
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// AddMerch inserts the merch lines for a purchase.
func (r *GormRepository) AddMerch(ctx context.Context, lines []models.PurchaseMerch) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

// ListByUser returns the user's purchase headers, newest first.
func (r *GormRepository) ListByUser(ctx context.Context, userID int64) ([]models.Purchase, error) {
	var rows []models.Purchase
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchased_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
