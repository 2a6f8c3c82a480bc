package models

import "time"

// CartSong marks a song as pending purchase for a user. The composite
// primary key is the uniqueness guarantee: one row per (song, user).
type CartSong struct {
	SongID    int64     `gorm:"column:song_id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName implements gorm's Tabler.
func (CartSong) TableName() string {
	return "cart_songs"
}
