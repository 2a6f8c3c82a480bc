package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/oversounds/tpp-backend/pkg/logger"
	"github.com/oversounds/tpp-backend/pkg/redis"
)

type identityStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	IdentityKey(digest string) string
}

// CachedResolver memoizes successful resolutions in redis so hot tokens do
// not hammer the auth service. Only the token digest is used as a key; the
// raw token never reaches redis. Any cache failure degrades to the
// underlying resolver.
type CachedResolver struct {
	inner Resolver
	store identityStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedResolver wraps a resolver with a redis-backed cache.
func NewCachedResolver(inner Resolver, store identityStore, ttl time.Duration, logg *logger.Logger) *CachedResolver {
	return &CachedResolver{inner: inner, store: store, ttl: ttl, logg: logg}
}

// Resolve checks the cache first and falls back to the wrapped resolver.
func (r *CachedResolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if r.store == nil || r.ttl <= 0 {
		return r.inner.Resolve(ctx, token)
	}

	key := r.store.IdentityKey(tokenDigest(token))
	if cached, err := r.store.Get(ctx, key); err == nil {
		var id Identity
		if jsonErr := json.Unmarshal([]byte(cached), &id); jsonErr == nil {
			return &id, nil
		}
	} else if !errors.Is(err, redis.ErrNotFound) && r.logg != nil {
		r.logg.Warn(ctx, "identity cache read failed, falling back to auth service")
	}

	resolved, err := r.inner.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if encoded, jsonErr := json.Marshal(resolved); jsonErr == nil {
		if setErr := r.store.Set(ctx, key, string(encoded), r.ttl); setErr != nil && r.logg != nil {
			r.logg.Warn(ctx, "identity cache write failed")
		}
	}

	return resolved, nil
}

func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
