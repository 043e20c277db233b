package shop

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// credentialsKeyPrefix namespaces cache entries in a shared Redis instance.
const credentialsKeyPrefix = "shopkit:credentials:"

// DefaultCredentialsTTL bounds how long a credentials record may be served
// from cache before the source of truth is consulted again.
const DefaultCredentialsTTL = 5 * time.Minute

// CachedCredentialsProvider is a Redis read-through cache in front of another
// provider. Only credential records are cached, never application instances:
// reference identity of registry entries is the registry's job.
type CachedCredentialsProvider struct {
	rdb  *redis.Client
	next CredentialsProvider
	ttl  time.Duration
}

// NewCachedCredentialsProvider wraps next with a Redis cache.
// A non-positive ttl falls back to DefaultCredentialsTTL.
func NewCachedCredentialsProvider(rdb *redis.Client, next CredentialsProvider, ttl time.Duration) *CachedCredentialsProvider {
	if rdb == nil {
		panic("shop: cached provider requires a redis client")
	}
	if next == nil {
		panic("shop: cached provider requires a next provider")
	}
	if ttl <= 0 {
		ttl = DefaultCredentialsTTL
	}
	return &CachedCredentialsProvider{rdb: rdb, next: next, ttl: ttl}
}

// ByShop returns the cached record when present, otherwise loads from the
// wrapped provider and caches the result. Cache errors are never surfaced:
// a broken cache degrades to the wrapped provider.
func (p *CachedCredentialsProvider) ByShop(ctx context.Context, shopKey string) (*Credentials, error) {
	cacheKey := credentialsKeyPrefix + shopKey

	if data, err := p.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var c Credentials
		if err := json.Unmarshal(data, &c); err == nil {
			return &c, nil
		}
		// Unreadable entry: drop it and reload from the source.
		_ = p.rdb.Del(ctx, cacheKey).Err()
	}

	c, err := p.next.ByShop(ctx, shopKey)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(c); err == nil {
		_ = p.rdb.Set(ctx, cacheKey, data, p.ttl).Err()
	}

	return c, nil
}

// Invalidate removes a shop's cached record, forcing the next ByShop to hit
// the wrapped provider. Call it after rotating a shop's API secret.
func (p *CachedCredentialsProvider) Invalidate(ctx context.Context, shopKey string) error {
	return p.rdb.Del(ctx, credentialsKeyPrefix+shopKey).Err()
}
