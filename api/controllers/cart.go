package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/oversounds/tpp-backend/api/middleware"
	"github.com/oversounds/tpp-backend/api/responses"
	"github.com/oversounds/tpp-backend/api/validators"
	cartsvc "github.com/oversounds/tpp-backend/internal/cart"
	"github.com/oversounds/tpp-backend/pkg/enums"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
	"github.com/oversounds/tpp-backend/pkg/logger"
)

type addCartRequest struct {
	SongID   *int64 `json:"songId" validate:"omitempty,gt=0"`
	AlbumID  *int64 `json:"albumId" validate:"omitempty,gt=0"`
	MerchID  *int64 `json:"merchId" validate:"omitempty,gt=0"`
	Quantity *int   `json:"quantity" validate:"omitempty,min=1"`
}

func (r addCartRequest) toInput() (cartsvc.AddItemInput, error) {
	set := 0
	input := cartsvc.AddItemInput{Quantity: r.Quantity}
	if r.SongID != nil {
		set++
		input.Kind = enums.ProductKindSong
		input.ProductID = *r.SongID
	}
	if r.AlbumID != nil {
		set++
		input.Kind = enums.ProductKindAlbum
		input.ProductID = *r.AlbumID
	}
	if r.MerchID != nil {
		set++
		input.Kind = enums.ProductKindMerch
		input.ProductID = *r.MerchID
	}
	if set != 1 {
		return cartsvc.AddItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of songId, albumId or merchId is required")
	}
	return input, nil
}

// CartAdd stages one product in the caller's cart.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		var payload addCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AddItem(r.Context(), userID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"productId": input.ProductID,
			"type":      input.Kind,
		})
	}
}

// CartList returns the caller's cart resolved to full product details.
func CartList(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		products, err := svc.ListProducts(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

// CartRemove drops one product from the caller's cart. The optional type
// query narrows the lookup to a single product family.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())

		productID, err := validators.ParsePathID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := validators.ParseQueryKind(r, "type")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		removed, err := svc.RemoveItem(r.Context(), userID, productID, kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"productId": productID,
			"type":      removed,
		})
	}
}
