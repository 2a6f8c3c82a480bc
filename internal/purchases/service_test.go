package purchases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestCommitValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(&stubPurchaseRepo{}, &stubOwnership{owned: true}, &stubCart{})

	cases := []struct {
		name  string
		user  int64
		input CommitInput
	}{
		{"missing user", 0, CommitInput{SongIDs: []int64{1}, Amount: decimal.NewFromInt(5), PaymentMethodID: 1}},
		{"missing method", 1, CommitInput{SongIDs: []int64{1}, Amount: decimal.NewFromInt(5)}},
		{"empty purchase", 1, CommitInput{Amount: decimal.NewFromInt(5), PaymentMethodID: 1}},
		{"zero amount", 1, CommitInput{SongIDs: []int64{1}, PaymentMethodID: 1}},
		{"negative amount", 1, CommitInput{SongIDs: []int64{1}, Amount: decimal.NewFromInt(-5), PaymentMethodID: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Commit(context.Background(), tc.user, tc.input)
			if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCommitOwnershipGate(t *testing.T) {
	t.Parallel()

	repo := &stubPurchaseRepo{}
	svc := newTestService(repo, &stubOwnership{owned: false}, &stubCart{})

	_, err := svc.Commit(context.Background(), 1, CommitInput{
		SongIDs:         []int64{1},
		Amount:          decimal.NewFromInt(5),
		PaymentMethodID: 9,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("foreign payment method should be forbidden, got %v", err)
	}
	if repo.headerWritten {
		t.Fatal("no writes may happen before the ownership gate passes")
	}
}

func TestCommitLineFailureRollsBack(t *testing.T) {
	t.Parallel()

	repo := &stubPurchaseRepo{albumErr: errors.New("insert failed")}
	cart := &stubCart{}
	svc := newTestService(repo, &stubOwnership{owned: true}, cart)

	_, err := svc.Commit(context.Background(), 1, CommitInput{
		SongIDs:         []int64{1},
		AlbumIDs:        []int64{2},
		Amount:          decimal.NewFromInt(15),
		PaymentMethodID: 9,
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeInternal) {
		t.Fatalf("a line failure should surface as internal error, got %v", err)
	}
	if cart.evicted {
		t.Fatal("eviction must not run for a failed purchase")
	}
}

func TestCommitSuccessEvictsCart(t *testing.T) {
	t.Parallel()

	repo := &stubPurchaseRepo{nextID: 77}
	cart := &stubCart{
		merch: []models.CartMerch{{MerchID: 3, UserID: 1, Quantity: 4}},
	}
	svc := newTestService(repo, &stubOwnership{owned: true}, cart)

	receipt, err := svc.Commit(context.Background(), 1, CommitInput{
		SongIDs:         []int64{1},
		MerchIDs:        []int64{3, 8},
		Amount:          decimal.NewFromInt(40),
		PaymentMethodID: 9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.PurchaseID != 77 || receipt.UserID != 1 {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if !cart.evicted {
		t.Fatal("bought items should be evicted from the cart")
	}

	// quantity carried over from the cart, direct buys default to 1
	if len(repo.merchLines) != 2 {
		t.Fatalf("expected 2 merch lines, got %d", len(repo.merchLines))
	}
	if repo.merchLines[0].Quantity != 4 || repo.merchLines[1].Quantity != 1 {
		t.Fatalf("unexpected quantities %+v", repo.merchLines)
	}
	if repo.merchLines[0].PurchaseID != 77 {
		t.Fatalf("merch lines should reference the new header, got %+v", repo.merchLines[0])
	}
}

func TestCommitHonorsClientPurchaseDate(t *testing.T) {
	t.Parallel()

	repo := &stubPurchaseRepo{nextID: 80}
	svc := newTestService(repo, &stubOwnership{owned: true}, &stubCart{})

	sent := time.Date(2025, 4, 2, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	_, err := svc.Commit(context.Background(), 1, CommitInput{
		SongIDs:         []int64{1},
		Amount:          decimal.NewFromInt(5),
		PaymentMethodID: 9,
		PurchasedAt:     &sent,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.header.PurchasedAt.Equal(sent) {
		t.Fatalf("client purchase date not honored, got %v", repo.header.PurchasedAt)
	}
	if repo.header.PurchasedAt.Location() != time.UTC {
		t.Fatalf("purchase date should be stored in UTC, got %v", repo.header.PurchasedAt.Location())
	}
}

func TestCommitDefaultsPurchaseDateToNow(t *testing.T) {
	t.Parallel()

	repo := &stubPurchaseRepo{nextID: 81}
	svc := newTestService(repo, &stubOwnership{owned: true}, &stubCart{})

	before := time.Now().UTC()
	_, err := svc.Commit(context.Background(), 1, CommitInput{
		SongIDs:         []int64{1},
		Amount:          decimal.NewFromInt(5),
		PaymentMethodID: 9,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.header.PurchasedAt.Before(before) || repo.header.PurchasedAt.After(time.Now().UTC()) {
		t.Fatalf("expected server-side timestamp, got %v", repo.header.PurchasedAt)
	}
}

func TestCommitDeduplicatesLineIDs(t *testing.T) {
	t.Parallel()

	repo := &stubPurchaseRepo{nextID: 82}
	svc := newTestService(repo, &stubOwnership{owned: true}, &stubCart{})

	_, err := svc.Commit(context.Background(), 1, CommitInput{
		SongIDs:         []int64{1, 1, 2},
		MerchIDs:        []int64{3, 3},
		Amount:          decimal.NewFromInt(25),
		PaymentMethodID: 9,
	})
	if err != nil {
		t.Fatalf("repeated ids must not sink the commit, got %v", err)
	}
	if len(repo.songIDs) != 2 || repo.songIDs[0] != 1 || repo.songIDs[1] != 2 {
		t.Fatalf("song ids not deduplicated: %v", repo.songIDs)
	}
	if len(repo.merchLines) != 1 || repo.merchLines[0].MerchID != 3 {
		t.Fatalf("merch lines not deduplicated: %+v", repo.merchLines)
	}
}

func TestCommitEvictionFailureDoesNotFailPurchase(t *testing.T) {
	t.Parallel()

	repo := &stubPurchaseRepo{nextID: 78}
	cart := &stubCart{deleteErr: errors.New("cart table unavailable")}
	svc := newTestService(repo, &stubOwnership{owned: true}, cart)

	receipt, err := svc.Commit(context.Background(), 1, CommitInput{
		SongIDs:         []int64{1},
		Amount:          decimal.NewFromInt(5),
		PaymentMethodID: 9,
	})
	if err != nil {
		t.Fatalf("eviction failures must not surface, got %v", err)
	}
	if receipt.PurchaseID != 78 {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
}

func newTestService(repo Repository, ownership ownershipChecker, cart cartEvictor) Service {
	svc, err := NewService(ServiceParams{
		Repo:              repo,
		Ownership:         ownership,
		Cart:              cart,
		TransactionRunner: stubTxRunner{},
	})
	if err != nil {
		panic(err)
	}
	return svc
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubOwnership struct {
	owned bool
}

func (s *stubOwnership) IsOwner(ctx context.Context, userID, methodID int64) (bool, error) {
	return s.owned, nil
}

type stubPurchaseRepo struct {
	nextID        int64
	albumErr      error
	headerWritten bool
	header        *models.Purchase
	songIDs       []int64
	merchLines    []models.PurchaseMerch
}

func (s *stubPurchaseRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubPurchaseRepo) CreateHeader(ctx context.Context, header *models.Purchase) error {
	s.headerWritten = true
	header.ID = s.nextID
	s.header = header
	return nil
}

func (s *stubPurchaseRepo) AddSongs(ctx context.Context, purchaseID int64, songIDs []int64) error {
	s.songIDs = songIDs
	return nil
}

func (s *stubPurchaseRepo) AddAlbums(ctx context.Context, purchaseID int64, albumIDs []int64) error {
	return s.albumErr
}

func (s *stubPurchaseRepo) AddMerch(ctx context.Context, lines []models.PurchaseMerch) error {
	s.merchLines = lines
	return nil
}

func (s *stubPurchaseRepo) ListByUser(ctx context.Context, userID int64) ([]models.Purchase, error) {
	return nil, nil
}

type stubCart struct {
	merch     []models.CartMerch
	deleteErr error
	evicted   bool
}

func (s *stubCart) ListMerch(ctx context.Context, userID int64) ([]models.CartMerch, error) {
	return s.merch, nil
}

func (s *stubCart) DeleteSongs(ctx context.Context, userID int64, songIDs []int64) error {
	s.evicted = true
	return s.deleteErr
}

func (s *stubCart) DeleteAlbums(ctx context.Context, userID int64, albumIDs []int64) error {
	s.evicted = true
	return s.deleteErr
}

func (s *stubCart) DeleteMerchBatch(ctx context.Context, userID int64, merchIDs []int64) error {
	s.evicted = true
	return s.deleteErr
}
