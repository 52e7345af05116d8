package pricing

import (
	"context"

	"github.com/Kamleshja/pims-service/internal/pricing/dto"
)

type UseCase interface {
	UpdatePrice(ctx context.Context, input *dto.UpdatePriceInput) error
	BulkUpdatePrice(ctx context.Context, input *dto.BulkUpdatePriceInput) error
}

// ListingInvalidator drops the memoized product listing after a committed
// price change. Satisfied by product.ListingCache.
type ListingInvalidator interface {
	Invalidate(ctx context.Context) error
}
