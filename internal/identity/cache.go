package identity

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/quillhq/noticesvc/internal/observability"
)

// CachedResolver memoizes profile lookups with a bounded TTL. Entries expire
// on their own; Invalidate drops one eagerly after an upstream profile change.
type CachedResolver struct {
	next  Resolver
	cache *expirable.LRU[int64, Profile]
}

func NewCachedResolver(next Resolver, size int, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		next:  next,
		cache: expirable.NewLRU[int64, Profile](size, nil, ttl),
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, userID int64) (Profile, error) {
	if p, ok := c.cache.Get(userID); ok {
		observability.IdentityCacheHits.Inc()
		return p, nil
	}
	observability.IdentityCacheMisses.Inc()

	p, err := c.next.Resolve(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	c.cache.Add(userID, p)
	return p, nil
}

// Invalidate drops a cached profile.
func (c *CachedResolver) Invalidate(userID int64) {
	c.cache.Remove(userID)
}
