package models

import "time"

// CartAlbum marks an album as pending purchase for a user.
type CartAlbum struct {
	AlbumID   int64     `gorm:"column:album_id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName implements gorm's Tabler.
func (CartAlbum) TableName() string {
	return "cart_albums"
}
