package controllers

import (
	"net/http"

	"github.com/oversounds/tpp-backend/api/responses"
	"github.com/oversounds/tpp-backend/api/validators"
	"github.com/oversounds/tpp-backend/internal/storefront"
	"github.com/oversounds/tpp-backend/pkg/logger"
	"github.com/oversounds/tpp-backend/pkg/pagination"
)

// StoreList serves one public page of the aggregated catalog.
func StoreList(svc storefront.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, meta, err := svc.List(r.Context(), pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products":   products,
			"pagination": meta,
		})
	}
}
