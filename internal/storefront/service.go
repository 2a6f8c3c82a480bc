package storefront

import (
	"context"
	"fmt"

	"github.com/oversounds/tpp-backend/pkg/catalog"
	"github.com/oversounds/tpp-backend/pkg/enums"
	"github.com/oversounds/tpp-backend/pkg/logger"
	"github.com/oversounds/tpp-backend/pkg/pagination"
	"github.com/oversounds/tpp-backend/pkg/types"
)

type catalogBrowser interface {
	ListByIDs(ctx context.Context, kind enums.ProductKind, ids []int64) ([]catalog.Detail, error)
	FilterIDs(ctx context.Context, kind enums.ProductKind) ([]int64, error)
}

// Service serves the public storefront listing.
type Service interface {
	List(ctx context.Context, params pagination.Params) ([]types.Product, pagination.Meta, error)
}

type service struct {
	catalog catalogBrowser
	logg    *logger.Logger
}

// NewService builds a storefront service over the catalog collaborator.
func NewService(browser catalogBrowser, logg *logger.Logger) (Service, error) {
	if browser == nil {
		return nil, fmt.Errorf("catalog browser required")
	}
	return &service{catalog: browser, logg: logg}, nil
}

type kindRef struct {
	kind enums.ProductKind
	id   int64
}

// List aggregates every browsable product across the three catalog kinds
// and serves one page of it. A kind whose catalog calls fail contributes
// nothing; the page is built from whatever resolved.
func (s *service) List(ctx context.Context, params pagination.Params) ([]types.Product, pagination.Meta, error) {
	var refs []kindRef
	for _, kind := range []enums.ProductKind{enums.ProductKindSong, enums.ProductKindAlbum, enums.ProductKindMerch} {
		ids, err := s.catalog.FilterIDs(ctx, kind)
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, fmt.Sprintf("catalog filter failed for %s, skipping kind", kind))
			}
			continue
		}
		for _, id := range ids {
			refs = append(refs, kindRef{kind: kind, id: id})
		}
	}

	start, end, meta := pagination.Slice(len(refs), params)
	window := refs[start:end]

	// group the page window per kind so each kind costs one batch call
	perKind := map[enums.ProductKind][]int64{}
	for _, ref := range window {
		perKind[ref.kind] = append(perKind[ref.kind], ref.id)
	}

	resolved := map[enums.ProductKind]map[int64]types.Product{}
	for kind, ids := range perKind {
		details, err := s.catalog.ListByIDs(ctx, kind, ids)
		if err != nil {
			if s.logg != nil {
				s.logg.Warn(ctx, fmt.Sprintf("catalog batch lookup failed for %s, skipping kind", kind))
			}
			continue
		}
		byID := make(map[int64]types.Product, len(details))
		for _, detail := range details {
			byID[detail.ID()] = detail.Product(kind)
		}
		resolved[kind] = byID
	}

	products := make([]types.Product, 0, len(window))
	for _, ref := range window {
		if product, ok := resolved[ref.kind][ref.id]; ok {
			products = append(products, product)
		}
	}

	return products, meta, nil
}
