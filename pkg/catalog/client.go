package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/oversounds/tpp-backend/pkg/config"
	"github.com/oversounds/tpp-backend/pkg/enums"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
)

// Detail is a product detail as returned by the catalog service.
type Detail struct {
	SongID        *int64          `json:"songId,omitempty"`
	AlbumID       *int64          `json:"albumId,omitempty"`
	MerchID       *int64          `json:"merchId,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	ArtistID      int64           `json:"artistId"`
	Collaborators []string        `json:"collaborators,omitempty"`
	Genres        []string        `json:"genres,omitempty"`
	Duration      *int            `json:"duration,omitempty"`
	Cover         string          `json:"cover,omitempty"`
	ReleaseDate   string          `json:"releaseDate,omitempty"`
	Songs         []string        `json:"songs,omitempty"`
}

// ID returns the product id regardless of kind.
func (d Detail) ID() int64 {
	switch {
	case d.SongID != nil:
		return *d.SongID
	case d.AlbumID != nil:
		return *d.AlbumID
	case d.MerchID != nil:
		return *d.MerchID
	}
	return 0
}

// Browser is the catalog surface the service layer depends on.
type Browser interface {
	Get(ctx context.Context, kind enums.ProductKind, id int64) (*Detail, error)
	ListByIDs(ctx context.Context, kind enums.ProductKind, ids []int64) ([]Detail, error)
	FilterIDs(ctx context.Context, kind enums.ProductKind) ([]int64, error)
}

// Client talks to the catalog service over HTTP. Product details and the
// browsable id space live there; this service only stores references.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a catalog client from the catalog config.
func NewClient(cfg config.CatalogConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Get fetches a single product detail. A 404 from the catalog maps to
// NOT_FOUND so callers can surface a missing product directly.
func (c *Client) Get(ctx context.Context, kind enums.ProductKind, id int64) (*Detail, error) {
	endpoint := fmt.Sprintf("%s/%s/%d", c.baseURL, kind, id)

	var detail Detail
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListByIDs fetches details for a batch of ids in one round trip. The
// catalog omits unknown ids from the response rather than failing the
// whole batch.
func (c *Client) ListByIDs(ctx context.Context, kind enums.ProductKind, ids []int64) ([]Detail, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	joined := make([]string, 0, len(ids))
	for _, id := range ids {
		joined = append(joined, strconv.FormatInt(id, 10))
	}
	endpoint := fmt.Sprintf("%s/%s/list?%s", c.baseURL, kind, url.Values{
		"ids": []string{strings.Join(joined, ",")},
	}.Encode())

	var details []Detail
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// FilterIDs returns every browsable product id for the kind.
func (c *Client) FilterIDs(ctx context.Context, kind enums.ProductKind) ([]int64, error) {
	endpoint := fmt.Sprintf("%s/%s/filter", c.baseURL, kind)

	var ids []int64
	if err := c.getJSON(ctx, endpoint, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog service unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	case resp.StatusCode != http.StatusOK:
		return pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog service returned %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return nil
}
