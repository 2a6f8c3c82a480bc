package middleware

import "context"

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxScopes contextKey = "scopes"
)

func UserIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

func ScopesFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxScopes).([]string); ok {
		return v
	}
	return nil
}

func HasScope(ctx context.Context, scope string) bool {
	for _, granted := range ScopesFromContext(ctx) {
		if granted == scope {
			return true
		}
	}
	return false
}

// WithIdentity injects the resolved user id and scopes into the context.
func WithIdentity(ctx context.Context, userID int64, scopes []string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUserID, userID)
	return context.WithValue(ctx, ctxScopes, scopes)
}
