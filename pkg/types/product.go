package types

import "github.com/shopspring/decimal"

// Product is the unified storefront/cart representation of a catalog item.
// Exactly one of SongID/AlbumID/MerchID is set depending on the kind.
type Product struct {
	SongID       *int64          `json:"songId,omitempty"`
	AlbumID      *int64          `json:"albumId,omitempty"`
	MerchID      *int64          `json:"merchId,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Artist       int64           `json:"artist"`
	Colaborators []string        `json:"colaborators,omitempty"`
	Genre        *string         `json:"genre,omitempty"`
	Duration     int             `json:"duration,omitempty"`
	Cover        string          `json:"cover,omitempty"`
	ReleaseDate  string          `json:"releaseDate,omitempty"`
	SongList     []string        `json:"songList,omitempty"`
	Quantity     *int            `json:"quantity,omitempty"`
}
