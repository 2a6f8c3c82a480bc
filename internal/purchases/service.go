package purchases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
	"github.com/oversounds/tpp-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ownershipChecker interface {
	IsOwner(ctx context.Context, userID, methodID int64) (bool, error)
}

type cartEvictor interface {
	ListMerch(ctx context.Context, userID int64) ([]models.CartMerch, error)
	DeleteSongs(ctx context.Context, userID int64, songIDs []int64) error
	DeleteAlbums(ctx context.Context, userID int64, albumIDs []int64) error
	DeleteMerchBatch(ctx context.Context, userID int64, merchIDs []int64) error
}

// Service commits purchases.
type Service interface {
	Commit(ctx context.Context, userID int64, input CommitInput) (*Receipt, error)
	History(ctx context.Context, userID int64) ([]models.Purchase, error)
}

// CommitInput is the full purchase payload: the product references being
// bought, the total charged and the card used. PurchasedAt is optional;
// legacy clients send their own purchase date, everyone else gets server
// time.
type CommitInput struct {
	SongIDs         []int64
	AlbumIDs        []int64
	MerchIDs        []int64
	Amount          decimal.Decimal
	PaymentMethodID int64
	PurchasedAt     *time.Time
}

// Receipt identifies a committed purchase.
type Receipt struct {
	PurchaseID int64 `json:"purchaseId"`
	UserID     int64 `json:"userId"`
}

// ServiceParams groups dependencies for the purchase service.
type ServiceParams struct {
	Repo              Repository
	Ownership         ownershipChecker
	Cart              cartEvictor
	TransactionRunner txRunner
	Logger            *logger.Logger
}

type service struct {
	repo      Repository
	ownership ownershipChecker
	cart      cartEvictor
	txRunner  txRunner
	logg      *logger.Logger
}

// NewService constructs a purchase service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "purchase repo required")
	}
	if params.Ownership == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ownership checker required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart evictor required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &service{
		repo:      params.Repo,
		ownership: params.Ownership,
		cart:      params.Cart,
		txRunner:  params.TransactionRunner,
		logg:      params.Logger,
	}, nil
}

// Commit writes the purchase header and every line in one transaction,
// then evicts the bought references from the cart best-effort. A line
// failure rolls back the whole purchase.
func (s *service) Commit(ctx context.Context, userID int64, input CommitInput) (*Receipt, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.PaymentMethodID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method id is required")
	}
	if len(input.SongIDs) == 0 && len(input.AlbumIDs) == 0 && len(input.MerchIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase must contain at least one product")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	owned, err := s.ownership.IsOwner(ctx, userID, input.PaymentMethodID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check payment method ownership")
	}
	if !owned {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "payment method not owned by user")
	}

	input.SongIDs = dedupeIDs(input.SongIDs)
	input.AlbumIDs = dedupeIDs(input.AlbumIDs)
	input.MerchIDs = dedupeIDs(input.MerchIDs)

	merchLines, err := s.merchLines(ctx, userID, input.MerchIDs)
	if err != nil {
		return nil, err
	}

	purchasedAt := time.Now().UTC()
	if input.PurchasedAt != nil {
		purchasedAt = input.PurchasedAt.UTC()
	}

	header := &models.Purchase{
		UserID:          userID,
		Amount:          input.Amount,
		PurchasedAt:     purchasedAt,
		PaymentMethodID: input.PaymentMethodID,
	}

	if err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateHeader(ctx, header); err != nil {
			return err
		}
		for i := range merchLines {
			merchLines[i].PurchaseID = header.ID
		}
		if err := txRepo.AddSongs(ctx, header.ID, input.SongIDs); err != nil {
			return err
		}
		if err := txRepo.AddAlbums(ctx, header.ID, input.AlbumIDs); err != nil {
			return err
		}
		return txRepo.AddMerch(ctx, merchLines)
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "commit purchase")
	}

	s.evictFromCart(ctx, userID, input)

	return &Receipt{PurchaseID: header.ID, UserID: userID}, nil
}

// History returns the user's committed purchase headers, newest first.
func (s *service) History(ctx context.Context, userID int64) ([]models.Purchase, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}
	return rows, nil
}

// dedupeIDs collapses repeated ids so a sloppy payload cannot trip the
// line-table primary keys and sink the whole commit. Order is preserved.
func dedupeIDs(ids []int64) []int64 {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// merchLines builds purchase merch lines, carrying quantities over from
// the cart when the article is staged there. Articles bought directly
// default to quantity 1.
func (s *service) merchLines(ctx context.Context, userID int64, merchIDs []int64) ([]models.PurchaseMerch, error) {
	if len(merchIDs) == 0 {
		return nil, nil
	}

	staged, err := s.cart.ListMerch(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart merch")
	}
	quantities := make(map[int64]int, len(staged))
	for _, row := range staged {
		quantities[row.MerchID] = row.Quantity
	}

	lines := make([]models.PurchaseMerch, 0, len(merchIDs))
	for _, id := range merchIDs {
		qty := 1
		if staged, ok := quantities[id]; ok && staged > 0 {
			qty = staged
		}
		lines = append(lines, models.PurchaseMerch{MerchID: id, Quantity: qty})
	}
	return lines, nil
}

// evictFromCart drops the bought references from the cart. The purchase
// is already committed, so failures are logged and swallowed.
func (s *service) evictFromCart(ctx context.Context, userID int64, input CommitInput) {
	err := multierr.Combine(
		s.cart.DeleteSongs(ctx, userID, input.SongIDs),
		s.cart.DeleteAlbums(ctx, userID, input.AlbumIDs),
		s.cart.DeleteMerchBatch(ctx, userID, input.MerchIDs),
	)
	if err != nil && s.logg != nil {
		s.logg.Error(ctx, "cart eviction after purchase failed", err)
	}
}
