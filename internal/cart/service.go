package cart

import (
	"context"
	"fmt"

	"github.com/oversounds/tpp-backend/pkg/catalog"
	"github.com/oversounds/tpp-backend/pkg/db"
	"github.com/oversounds/tpp-backend/pkg/db/models"
	"github.com/oversounds/tpp-backend/pkg/enums"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
	"github.com/oversounds/tpp-backend/pkg/logger"
	"github.com/oversounds/tpp-backend/pkg/types"
)

type catalogBrowser interface {
	Get(ctx context.Context, kind enums.ProductKind, id int64) (*catalog.Detail, error)
	ListByIDs(ctx context.Context, kind enums.ProductKind, ids []int64) ([]catalog.Detail, error)
}

// Service exposes the pending-purchase operations for a single user.
type Service interface {
	AddItem(ctx context.Context, userID int64, input AddItemInput) error
	ListItems(ctx context.Context, userID int64) (*Snapshot, error)
	ListProducts(ctx context.Context, userID int64) ([]types.Product, error)
	RemoveItem(ctx context.Context, userID int64, productID int64, kind *enums.ProductKind) (enums.ProductKind, error)
}

type service struct {
	repo    Repository
	catalog catalogBrowser
	logg    *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo Repository, browser catalogBrowser, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if browser == nil {
		return nil, fmt.Errorf("catalog browser required")
	}
	return &service{repo: repo, catalog: browser, logg: logg}, nil
}

// AddItemInput captures one product reference to stage for purchase.
type AddItemInput struct {
	ProductID int64
	Kind      enums.ProductKind
	Quantity  *int
}

// Snapshot is the raw cart content, one slice per product family.
type Snapshot struct {
	Songs  []models.CartSong
	Albums []models.CartAlbum
	Merch  []models.CartMerch
}

// IsEmpty reports whether the cart holds nothing.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Songs) == 0 && len(s.Albums) == 0 && len(s.Merch) == 0
}

// AddItem stages a product reference. Adding an id that is already staged
// is a validation failure; the composite primary key is the authority.
func (s *service) AddItem(ctx context.Context, userID int64, input AddItemInput) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if !input.Kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product kind")
	}

	var err error
	switch input.Kind {
	case enums.ProductKindSong:
		if input.Quantity != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity only applies to merch")
		}
		err = s.repo.CreateSong(ctx, &models.CartSong{SongID: input.ProductID, UserID: userID})
	case enums.ProductKindAlbum:
		if input.Quantity != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity only applies to merch")
		}
		err = s.repo.CreateAlbum(ctx, &models.CartAlbum{AlbumID: input.ProductID, UserID: userID})
	case enums.ProductKindMerch:
		qty := 1
		if input.Quantity != nil {
			qty = *input.Quantity
		}
		if qty < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
		}
		err = s.repo.CreateMerch(ctx, &models.CartMerch{MerchID: input.ProductID, UserID: userID, Quantity: qty})
	}

	if err != nil {
		if db.IsUniqueViolation(err) {
			return pkgerrors.New(pkgerrors.CodeValidation, "product already in cart")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart item")
	}
	return nil
}

// ListItems returns the raw staged references for the user.
func (s *service) ListItems(ctx context.Context, userID int64) (*Snapshot, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	songs, err := s.repo.ListSongs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart songs")
	}
	albums, err := s.repo.ListAlbums(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart albums")
	}
	merch, err := s.repo.ListMerch(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart merch")
	}

	return &Snapshot{Songs: songs, Albums: albums, Merch: merch}, nil
}

// ListProducts resolves the staged references against the catalog and
// returns full product details, songs first, then albums, then merch.
func (s *service) ListProducts(ctx context.Context, userID int64) ([]types.Product, error) {
	snapshot, err := s.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	products := make([]types.Product, 0, len(snapshot.Songs)+len(snapshot.Albums)+len(snapshot.Merch))

	songIDs := make([]int64, 0, len(snapshot.Songs))
	for _, row := range snapshot.Songs {
		songIDs = append(songIDs, row.SongID)
	}
	products = append(products, s.resolveKind(ctx, enums.ProductKindSong, songIDs)...)

	albumIDs := make([]int64, 0, len(snapshot.Albums))
	for _, row := range snapshot.Albums {
		albumIDs = append(albumIDs, row.AlbumID)
	}
	products = append(products, s.resolveKind(ctx, enums.ProductKindAlbum, albumIDs)...)

	merchIDs := make([]int64, 0, len(snapshot.Merch))
	quantities := make(map[int64]int, len(snapshot.Merch))
	for _, row := range snapshot.Merch {
		merchIDs = append(merchIDs, row.MerchID)
		quantities[row.MerchID] = row.Quantity
	}
	resolved := s.resolveKind(ctx, enums.ProductKindMerch, merchIDs)
	for i := range resolved {
		if resolved[i].MerchID != nil {
			if qty, ok := quantities[*resolved[i].MerchID]; ok {
				resolved[i].Quantity = &qty
			}
		}
	}
	products = append(products, resolved...)

	return products, nil
}

// resolveKind fetches details in one batch and falls back to per-id
// lookups when the batch endpoint fails. Items that cannot be resolved
// are logged and dropped from the listing, never surfaced to the caller.
func (s *service) resolveKind(ctx context.Context, kind enums.ProductKind, ids []int64) []types.Product {
	if len(ids) == 0 {
		return nil
	}

	details, err := s.catalog.ListByIDs(ctx, kind, ids)
	if err == nil {
		products := make([]types.Product, 0, len(details))
		for _, detail := range details {
			products = append(products, detail.Product(kind))
		}
		return products
	}
	if s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("catalog batch lookup failed for %s, retrying per id", kind))
	}

	products := make([]types.Product, 0, len(ids))
	for _, id := range ids {
		detail, getErr := s.catalog.Get(ctx, kind, id)
		if getErr != nil {
			if !pkgerrors.HasCode(getErr, pkgerrors.CodeNotFound) && s.logg != nil {
				s.logg.Error(ctx, fmt.Sprintf("catalog lookup failed for %s %d", kind, id), getErr)
			}
			continue
		}
		products = append(products, detail.Product(kind))
	}
	return products
}

// RemoveItem drops a staged reference. When the kind is unknown the per
// kind tables are probed in a fixed order, stopping at the first match.
func (s *service) RemoveItem(ctx context.Context, userID int64, productID int64, kind *enums.ProductKind) (enums.ProductKind, error) {
	if userID <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	kinds := []enums.ProductKind{enums.ProductKindSong, enums.ProductKindAlbum, enums.ProductKindMerch}
	if kind != nil {
		if !kind.IsValid() {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid product kind")
		}
		kinds = []enums.ProductKind{*kind}
	}

	for _, candidate := range kinds {
		var (
			affected int64
			err      error
		)
		switch candidate {
		case enums.ProductKindSong:
			affected, err = s.repo.DeleteSong(ctx, userID, productID)
		case enums.ProductKindAlbum:
			affected, err = s.repo.DeleteAlbum(ctx, userID, productID)
		case enums.ProductKindMerch:
			affected, err = s.repo.DeleteMerch(ctx, userID, productID)
		}
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
		}
		if affected > 0 {
			return candidate, nil
		}
	}

	return "", pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
}
