package models

// PurchaseSong links a purchase to one bought song.
type PurchaseSong struct {
	PurchaseID int64 `gorm:"column:purchase_id;primaryKey"`
	SongID     int64 `gorm:"column:song_id;primaryKey"`
}

// TableName implements gorm's Tabler.
func (PurchaseSong) TableName() string {
	return "purchase_songs"
}

// PurchaseAlbum links a purchase to one bought album.
type PurchaseAlbum struct {
	PurchaseID int64 `gorm:"column:purchase_id;primaryKey"`
	AlbumID    int64 `gorm:"column:album_id;primaryKey"`
}

// TableName implements gorm's Tabler.
func (PurchaseAlbum) TableName() string {
	return "purchase_albums"
}

// PurchaseMerch links a purchase to one bought merch article, carrying
// the quantity captured from the cart at commit time.
type PurchaseMerch struct {
	PurchaseID int64 `gorm:"column:purchase_id;primaryKey"`
	MerchID    int64 `gorm:"column:merch_id;primaryKey"`
	Quantity   int   `gorm:"column:quantity;not null;default:1"`
}

// TableName implements gorm's Tabler.
func (PurchaseMerch) TableName() string {
	return "purchase_merch"
}
