package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/oversounds/tpp-backend/pkg/config"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
)

// Identity is the verified result of resolving an opaque session token
// against the external auth service.
type Identity struct {
	UserID int64    `json:"userId"`
	Scopes []string `json:"scopes"`
}

// HasScope reports whether the identity carries the requested scope.
func (i Identity) HasScope(scope string) bool {
	for _, granted := range i.Scopes {
		if granted == scope {
			return true
		}
	}
	return false
}

// Resolver translates a bearer/session token into a verified identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// Client calls the external auth service over HTTP. TPP never validates
// tokens locally; the auth service is the single source of truth.
type Client struct {
	baseURL    string
	cookieName string
	httpClient *http.Client
}

// NewClient builds an identity client from the auth config.
func NewClient(cfg config.AuthConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("auth base url is required")
	}
	cookie := strings.TrimSpace(cfg.CookieName)
	if cookie == "" {
		cookie = "oversound_auth"
	}
	return &Client{
		baseURL:    base,
		cookieName: cookie,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type authResponse struct {
	UserID *int64   `json:"userId"`
	ID     *int64   `json:"id"`
	Scopes []string `json:"scopes"`
}

// Resolve asks the auth service to validate the token. A rejected token
// maps to FORBIDDEN; an unreachable auth service maps to DEPENDENCY_ERROR.
func (c *Client) Resolve(ctx context.Context, token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth", nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build auth request")
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: c.cookieName, Value: token})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "identity service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "invalid or unauthorized token")
	}

	var payload authResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode identity response")
	}

	userID := payload.UserID
	if userID == nil {
		userID = payload.ID
	}
	if userID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "identity response missing user id")
	}

	return &Identity{UserID: *userID, Scopes: payload.Scopes}, nil
}
