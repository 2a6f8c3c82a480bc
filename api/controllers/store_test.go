package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oversounds/tpp-backend/pkg/pagination"
	"github.com/oversounds/tpp-backend/pkg/types"
)

type stubStoreService struct {
	params   pagination.Params
	products []types.Product
	meta     pagination.Meta
	err      error
}

func (s *stubStoreService) List(ctx context.Context, params pagination.Params) ([]types.Product, pagination.Meta, error) {
	s.params = params
	return s.products, s.meta, s.err
}

func TestStoreListDefaults(t *testing.T) {
	svc := &stubStoreService{meta: pagination.Meta{Page: 1, Limit: pagination.DefaultLimit}}
	handler := StoreList(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/store", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.params.Page != 1 || svc.params.Limit != pagination.DefaultLimit {
		t.Fatalf("unexpected params: %+v", svc.params)
	}
}

func TestStoreListPaging(t *testing.T) {
	songID := int64(5)
	svc := &stubStoreService{
		products: []types.Product{{SongID: &songID, Name: "Track"}},
		meta:     pagination.Meta{Page: 2, Limit: 10, Total: 21},
	}
	handler := StoreList(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/store?page=2&limit=10", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.params.Page != 2 || svc.params.Limit != 10 {
		t.Fatalf("unexpected params: %+v", svc.params)
	}

	var envelope struct {
		Data struct {
			Products   []types.Product `json:"products"`
			Pagination pagination.Meta `json:"pagination"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Products) != 1 || envelope.Data.Pagination.Total != 21 {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestStoreListRejectsBadPage(t *testing.T) {
	handler := StoreList(&stubStoreService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/store?page=0", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestStoreListCapsLimit(t *testing.T) {
	handler := StoreList(&stubStoreService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/store?limit=5000", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
