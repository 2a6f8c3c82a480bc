package middleware

import (
	"net/http"
	"strings"

	"github.com/oversounds/tpp-backend/api/responses"
	"github.com/oversounds/tpp-backend/pkg/config"
	pkgerrors "github.com/oversounds/tpp-backend/pkg/errors"
	"github.com/oversounds/tpp-backend/pkg/identity"
	"github.com/oversounds/tpp-backend/pkg/logger"
)

// Auth resolves the opaque session token against the auth service and
// seeds the request context with the verified identity. The token comes
// from the auth cookie, with a bearer header fallback for API clients.
func Auth(cfg config.AuthConfig, resolver identity.Resolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r, cfg.CookieName)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			resolved, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := WithIdentity(r.Context(), resolved.UserID, resolved.Scopes)
			if logg != nil {
				ctx = logg.WithUserID(ctx, resolved.UserID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope rejects authenticated requests whose identity lacks the scope.
func RequireScope(scope string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasScope(r.Context(), scope) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient scope"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if value := strings.TrimSpace(cookie.Value); value != "" {
			return value
		}
	}

	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return ""
}
