package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/oversounds/tpp-backend/pkg/catalog"
	"github.com/oversounds/tpp-backend/pkg/db/models"
	"github.com/oversounds/tpp-backend/pkg/enums"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestAddItemValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubCartRepo{}, &stubCatalog{})

	if err := svc.AddItem(context.Background(), 0, AddItemInput{ProductID: 1, Kind: enums.ProductKindSong}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("missing user id should fail validation, got %v", err)
	}
	if err := svc.AddItem(context.Background(), 1, AddItemInput{ProductID: 0, Kind: enums.ProductKindSong}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("missing product id should fail validation, got %v", err)
	}
	if err := svc.AddItem(context.Background(), 1, AddItemInput{ProductID: 1, Kind: "vinyl"}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("unknown kind should fail validation, got %v", err)
	}

	qty := 0
	if err := svc.AddItem(context.Background(), 1, AddItemInput{ProductID: 1, Kind: enums.ProductKindMerch, Quantity: &qty}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("zero quantity should fail validation, got %v", err)
	}

	one := 1
	if err := svc.AddItem(context.Background(), 1, AddItemInput{ProductID: 1, Kind: enums.ProductKindSong, Quantity: &one}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("quantity on a song should fail validation, got %v", err)
	}
}

func TestAddItemDuplicate(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{createErr: errors.New(`duplicate key value violates unique constraint "cart_songs_pkey"`)}
	svc := newTestService(repo, &stubCatalog{})

	err := svc.AddItem(context.Background(), 1, AddItemInput{ProductID: 1, Kind: enums.ProductKindSong})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("duplicate insert should surface as validation error, got %v", err)
	}
}

func TestAddItemDefaultsMerchQuantity(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{}
	svc := newTestService(repo, &stubCatalog{})

	if err := svc.AddItem(context.Background(), 1, AddItemInput{ProductID: 7, Kind: enums.ProductKindMerch}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastMerch == nil || repo.lastMerch.Quantity != 1 {
		t.Fatalf("merch quantity should default to 1, got %+v", repo.lastMerch)
	}
}

func TestRemoveItemProbesKindsInOrder(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{albums: map[int64]struct{}{5: {}}}
	svc := newTestService(repo, &stubCatalog{})

	kind, err := svc.RemoveItem(context.Background(), 1, 5, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != enums.ProductKindAlbum {
		t.Fatalf("expected album to be removed, got %s", kind)
	}
}

func TestRemoveItemNotInCart(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubCartRepo{}, &stubCatalog{})

	_, err := svc.RemoveItem(context.Background(), 1, 5, nil)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("removing an absent product should be not-found, got %v", err)
	}

	kind := enums.ProductKindSong
	_, err = svc.RemoveItem(context.Background(), 1, 5, &kind)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("removing an absent song should be not-found, got %v", err)
	}
}

func TestListProductsResolvesBatchesAndQuantities(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{
		songRows:  []models.CartSong{{SongID: 1, UserID: 9}},
		merchRows: []models.CartMerch{{MerchID: 7, UserID: 9, Quantity: 2}},
	}
	browser := &stubCatalog{
		batches: map[enums.ProductKind][]catalog.Detail{
			enums.ProductKindSong:  {detailFor(enums.ProductKindSong, 1, "Moonrise")},
			enums.ProductKindMerch: {detailFor(enums.ProductKindMerch, 7, "Tour Shirt")},
		},
	}
	svc := newTestService(repo, browser)

	products, err := svc.ListProducts(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].SongID == nil || *products[0].SongID != 1 {
		t.Fatalf("songs should come first, got %+v", products[0])
	}
	if products[1].Quantity == nil || *products[1].Quantity != 2 {
		t.Fatalf("merch quantity should be attached, got %+v", products[1])
	}
}

func TestListProductsFallsBackPerID(t *testing.T) {
	t.Parallel()

	repo := &stubCartRepo{
		songRows: []models.CartSong{{SongID: 1, UserID: 9}, {SongID: 2, UserID: 9}},
	}
	browser := &stubCatalog{
		batchErr: pkgerrors.New(pkgerrors.CodeDependency, "catalog service returned 500"),
		singles: map[int64]catalog.Detail{
			1: detailFor(enums.ProductKindSong, 1, "Moonrise"),
		},
	}
	svc := newTestService(repo, browser)

	products, err := svc.ListProducts(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected unknown ids to be dropped, got %d products", len(products))
	}
	if products[0].Name != "Moonrise" {
		t.Fatalf("unexpected product %+v", products[0])
	}
}

func newTestService(repo Repository, browser catalogBrowser) Service {
	svc, err := NewService(repo, browser, nil)
	if err != nil {
		panic(err)
	}
	return svc
}

func detailFor(kind enums.ProductKind, id int64, title string) catalog.Detail {
	detail := catalog.Detail{Title: title, Price: decimal.NewFromInt(10), ArtistID: 1}
	switch kind {
	case enums.ProductKindSong:
		detail.SongID = &id
	case enums.ProductKindAlbum:
		detail.AlbumID = &id
	case enums.ProductKindMerch:
		detail.MerchID = &id
	}
	return detail
}

type stubCartRepo struct {
	createErr error
	lastMerch *models.CartMerch

	songs  map[int64]struct{}
	albums map[int64]struct{}
	merch  map[int64]struct{}

	songRows  []models.CartSong
	albumRows []models.CartAlbum
	merchRows []models.CartMerch
}

func (s *stubCartRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCartRepo) CreateSong(ctx context.Context, row *models.CartSong) error {
	return s.createErr
}
func (s *stubCartRepo) CreateAlbum(ctx context.Context, row *models.CartAlbum) error {
	return s.createErr
}
func (s *stubCartRepo) CreateMerch(ctx context.Context, row *models.CartMerch) error {
	s.lastMerch = row
	return s.createErr
}

func (s *stubCartRepo) DeleteSong(ctx context.Context, userID, songID int64) (int64, error) {
	if _, ok := s.songs[songID]; ok {
		return 1, nil
	}
	return 0, nil
}
func (s *stubCartRepo) DeleteAlbum(ctx context.Context, userID, albumID int64) (int64, error) {
	if _, ok := s.albums[albumID]; ok {
		return 1, nil
	}
	return 0, nil
}
func (s *stubCartRepo) DeleteMerch(ctx context.Context, userID, merchID int64) (int64, error) {
	if _, ok := s.merch[merchID]; ok {
		return 1, nil
	}
	return 0, nil
}

func (s *stubCartRepo) DeleteSongs(ctx context.Context, userID int64, songIDs []int64) error {
	return nil
}
func (s *stubCartRepo) DeleteAlbums(ctx context.Context, userID int64, albumIDs []int64) error {
	return nil
}
func (s *stubCartRepo) DeleteMerchBatch(ctx context.Context, userID int64, merchIDs []int64) error {
	return nil
}

func (s *stubCartRepo) ListSongs(ctx context.Context, userID int64) ([]models.CartSong, error) {
	return s.songRows, nil
}
func (s *stubCartRepo) ListAlbums(ctx context.Context, userID int64) ([]models.CartAlbum, error) {
	return s.albumRows, nil
}
func (s *stubCartRepo) ListMerch(ctx context.Context, userID int64) ([]models.CartMerch, error) {
	return s.merchRows, nil
}

type stubCatalog struct {
	batches  map[enums.ProductKind][]catalog.Detail
	batchErr error
	singles  map[int64]catalog.Detail
}

func (s *stubCatalog) Get(ctx context.Context, kind enums.ProductKind, id int64) (*catalog.Detail, error) {
	if detail, ok := s.singles[id]; ok {
		return &detail, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *stubCatalog) ListByIDs(ctx context.Context, kind enums.ProductKind, ids []int64) ([]catalog.Detail, error) {
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	return s.batches[kind], nil
}
