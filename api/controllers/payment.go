package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oversounds/tpp-backend/api/middleware"
	"github.com/oversounds/tpp-backend/api/responses"
	"github.com/oversounds/tpp-backend/api/validators"
	"github.com/oversounds/tpp-backend/internal/paymentmethods"
	"github.com/oversounds/tpp-backend/pkg/db/models"
	"github.com/oversounds/tpp-backend/pkg/logger"
)

type addMethodRequest struct {
	CardNumber  string `json:"cardNumber" validate:"required"`
	ExpireMonth int    `json:"expireMonth" validate:"required,min=1,max=12"`
	ExpireYear  int    `json:"expireYear" validate:"required"`
	CardHolder  string `json:"cardHolder" validate:"required"`
}

type paymentMethodResponse struct {
	ID          int64  `json:"paymentMethodId"`
	CardNumber  string `json:"cardNumber"`
	ExpireMonth int    `json:"expireMonth"`
	ExpireYear  int    `json:"expireYear"`
	CardHolder  string `json:"cardHolder"`
}

func newPaymentMethodResponse(method *models.PaymentMethod) paymentMethodResponse {
	return paymentMethodResponse{
		ID:          method.ID,
		CardNumber:  method.CardNumber,
		ExpireMonth: method.ExpireMonth,
		ExpireYear:  method.ExpireYear,
		CardHolder:  method.CardHolder,
	}
}

// PaymentAdd stores a card on file for the caller.
func PaymentAdd(svc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload addMethodRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := svc.AddMethod(r.Context(), userID, paymentmethods.AddMethodInput{
			CardNumber:  payload.CardNumber,
			ExpireMonth: payload.ExpireMonth,
			ExpireYear:  payload.ExpireYear,
			CardHolder:  payload.CardHolder,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newPaymentMethodResponse(method))
	}
}

// PaymentList returns the caller's cards on file.
func PaymentList(svc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		methods, err := svc.ListMethods(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]paymentMethodResponse, 0, len(methods))
		for i := range methods {
			out = append(out, newPaymentMethodResponse(&methods[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// PaymentDelete removes one of the caller's cards on file.
func PaymentDelete(svc paymentmethods.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		methodID, err := validators.ParsePathID(chi.URLParam(r, "paymentMethodId"), "paymentMethodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMethod(r.Context(), userID, methodID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"paymentMethodId": methodID})
	}
}
