package product

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Kamleshja/pims-service/internal/product/dto"
	"github.com/Kamleshja/pims-service/pkg/cache"
)

const (
	listingCacheKey = "products:all"
	listingCacheTTL = 5 * time.Minute
)

// ListingCache memoizes one named snapshot of the product listing with a
// 5-minute absolute expiration. Price mutations invalidate it explicitly;
// stock adjustments do not.
type ListingCache struct {
	cache cache.Cache
}

func NewListingCache(c cache.Cache) *ListingCache {
	return &ListingCache{cache: c}
}

func (l *ListingCache) Get(ctx context.Context) ([]dto.ProductListItem, bool, error) {
	data, ok, err := l.cache.Get(ctx, listingCacheKey)
	if err != nil || !ok {
		return nil, false, err
	}

	var items []dto.ProductListItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt snapshot is treated as a miss and overwritten on the
		// next Set.
		return nil, false, nil
	}
	return items, true, nil
}

func (l *ListingCache) Set(ctx context.Context, items []dto.ProductListItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return l.cache.Set(ctx, listingCacheKey, data, listingCacheTTL)
}

func (l *ListingCache) Invalidate(ctx context.Context) error {
	return l.cache.Remove(ctx, listingCacheKey)
}
