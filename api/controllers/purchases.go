package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oversounds/tpp-backend/api/middleware"
	"github.com/oversounds/tpp-backend/api/responses"
	"github.com/oversounds/tpp-backend/api/validators"
	"github.com/oversounds/tpp-backend/internal/purchases"
	"github.com/oversounds/tpp-backend/pkg/logger"
)

type commitPurchaseRequest struct {
	SongIDs         []int64         `json:"songIds" validate:"omitempty,dive,gt=0"`
	AlbumIDs        []int64         `json:"albumIds" validate:"omitempty,dive,gt=0"`
	MerchIDs        []int64         `json:"merchIds" validate:"omitempty,dive,gt=0"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID int64           `json:"paymentMethodId" validate:"required,gt=0"`
	PurchaseDate    *time.Time      `json:"purchaseDate"`
}

// PurchaseCommit commits a purchase of the listed products.
func PurchaseCommit(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload commitPurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Commit(r.Context(), userID, purchases.CommitInput{
			SongIDs:         payload.SongIDs,
			AlbumIDs:        payload.AlbumIDs,
			MerchIDs:        payload.MerchIDs,
			Amount:          payload.Amount,
			PaymentMethodID: payload.PaymentMethodID,
			PurchasedAt:     payload.PurchaseDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, receipt)
	}
}

type purchaseHistoryEntry struct {
	PurchaseID      int64           `json:"purchaseId"`
	Amount          decimal.Decimal `json:"amount"`
	PurchasedAt     string          `json:"purchasedAt"`
	PaymentMethodID int64           `json:"paymentMethodId"`
}

// PurchaseHistory returns the caller's committed purchases, newest first.
func PurchaseHistory(svc purchases.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		rows, err := svc.History(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]purchaseHistoryEntry, 0, len(rows))
		for _, row := range rows {
			out = append(out, purchaseHistoryEntry{
				PurchaseID:      row.ID,
				Amount:          row.Amount,
				PurchasedAt:     row.PurchasedAt.UTC().Format(time.RFC3339),
				PaymentMethodID: row.PaymentMethodID,
			})
		}
		responses.WriteSuccess(w, out)
	}
}
