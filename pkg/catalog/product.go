package catalog

import (
	"github.com/oversounds/tpp-backend/pkg/enums"
	"github.com/oversounds/tpp-backend/pkg/types"
)

// Product converts a catalog detail into the unified product DTO served
// to clients. The kind decides which id field is populated when the
// catalog response carries a bare id.
func (d Detail) Product(kind enums.ProductKind) types.Product {
	product := types.Product{
		Name:         d.Title,
		Description:  d.Description,
		Price:        d.Price,
		Artist:       d.ArtistID,
		Colaborators: d.Collaborators,
		Cover:        d.Cover,
		ReleaseDate:  d.ReleaseDate,
		SongList:     d.Songs,
	}

	if len(d.Genres) > 0 {
		genre := d.Genres[0]
		product.Genre = &genre
	}
	if d.Duration != nil {
		product.Duration = *d.Duration
	}

	id := d.ID()
	switch kind {
	case enums.ProductKindSong:
		product.SongID = &id
	case enums.ProductKindAlbum:
		product.AlbumID = &id
	case enums.ProductKindMerch:
		product.MerchID = &id
	}
	return product
}
