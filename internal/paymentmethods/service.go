package paymentmethods

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/oversounds/tpp-backend/pkg/db/models"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service orchestrates card-on-file persistence per user.
type Service interface {
	AddMethod(ctx context.Context, userID int64, input AddMethodInput) (*models.PaymentMethod, error)
	ListMethods(ctx context.Context, userID int64) ([]models.PaymentMethod, error)
	DeleteMethod(ctx context.Context, userID, methodID int64) error
}

// AddMethodInput captures the payload required to store a card reference.
// Card numbers arrive pre-masked; no PAN validation happens here.
type AddMethodInput struct {
	CardNumber  string
	ExpireMonth int
	ExpireYear  int
	CardHolder  string
}

type service struct {
	repo     Repository
	txRunner txRunner
}

// NewService constructs a payment method service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment method repo required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &service{repo: repo, txRunner: tx}, nil
}

// AddMethod stores the card and its ownership link atomically. A card
// without an ownership row must never exist.
func (s *service) AddMethod(ctx context.Context, userID int64, input AddMethodInput) (*models.PaymentMethod, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if strings.TrimSpace(input.CardNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card number is required")
	}
	if strings.TrimSpace(input.CardHolder) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card holder is required")
	}
	if input.ExpireMonth < 1 || input.ExpireMonth > 12 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expire month must be between 1 and 12")
	}
	if input.ExpireYear < time.Now().Year() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "card is expired")
	}

	method := &models.PaymentMethod{
		CardNumber:  strings.TrimSpace(input.CardNumber),
		ExpireMonth: input.ExpireMonth,
		ExpireYear:  input.ExpireYear,
		CardHolder:  strings.TrimSpace(input.CardHolder),
	}

	if err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.CreateMethod(ctx, method); err != nil {
			return err
		}
		return txRepo.CreateOwnership(ctx, &models.PaymentMethodOwnership{
			UserID:          userID,
			PaymentMethodID: method.ID,
		})
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist payment method")
	}

	return method, nil
}

// ListMethods returns the user's cards on file.
func (s *service) ListMethods(ctx context.Context, userID int64) ([]models.PaymentMethod, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	methods, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment methods")
	}
	return methods, nil
}

// DeleteMethod removes the ownership link and the card in one transaction.
// A method the user does not own reads as absent.
func (s *service) DeleteMethod(ctx context.Context, userID, methodID int64) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if methodID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment method id is required")
	}

	err := s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		affected, err := txRepo.DeleteOwnership(ctx, userID, methodID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
		}
		return txRepo.DeleteMethod(ctx, methodID)
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment method")
	}
	return nil
}
