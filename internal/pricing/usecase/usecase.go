package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Kamleshja/pims-service/internal/metrics"
	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/internal/pricing"
	"github.com/Kamleshja/pims-service/internal/pricing/dto"
	"github.com/Kamleshja/pims-service/pkg/apperrors"
	"github.com/Kamleshja/pims-service/pkg/cache"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond

	// Currency precision: prices are rounded to 2 decimal places before any
	// comparison or write.
	pricePrecision = 2
)

var oneHundred = decimal.NewFromInt(100)

type pricingUseCase struct {
	repo        pricing.Repository
	locker      cache.Locker
	invalidator pricing.ListingInvalidator
	logger      logger.ZapLogger
}

func NewPricingUseCase(repo pricing.Repository, locker cache.Locker, invalidator pricing.ListingInvalidator, log logger.ZapLogger) pricing.UseCase {
	return &pricingUseCase{
		repo:        repo,
		locker:      locker,
		invalidator: invalidator,
		logger:      log,
	}
}

func (uc *pricingUseCase) UpdatePrice(ctx context.Context, input *dto.UpdatePriceInput) error {
	lockKey := fmt.Sprintf("lock:price:%s", input.ProductID)
	lockToken := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockToken, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire price lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockBackoff)
	}
	if !acquired {
		metrics.PriceUpdates.WithLabelValues(metrics.OutcomeError).Inc()
		return apperrors.NewInvalidOperation("price update busy, please retry")
	}
	defer uc.locker.ReleaseLock(ctx, lockKey, lockToken)

	product, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		metrics.PriceUpdates.WithLabelValues(metrics.OutcomeError).Inc()
		return err
	}
	if product == nil {
		uc.logger.Warn("product not found for price update", zap.String("product_id", input.ProductID))
		metrics.PriceUpdates.WithLabelValues(metrics.OutcomeRejected).Inc()
		return apperrors.NewNotFound("product not found")
	}

	rounded := input.NewPrice.Round(pricePrecision)

	if product.Price.Equal(rounded) {
		uc.logger.Info("price unchanged", zap.String("product_id", product.ID))
		metrics.PriceUpdates.WithLabelValues(metrics.OutcomeNoop).Inc()
		return nil
	}

	oldPrice := product.Price
	history := &model.ProductPriceHistory{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		OldPrice:        oldPrice,
		NewPrice:        rounded,
		Reason:          input.Reason,
		ChangedByUserID: input.ActorID,
		ChangedAt:       time.Now().UTC(),
	}

	if err := uc.repo.UpdatePriceWithHistory(ctx, product.ID, rounded, history); err != nil {
		metrics.PriceUpdates.WithLabelValues(metrics.OutcomeError).Inc()
		return err
	}

	uc.invalidateListing(ctx)

	uc.logger.Info("price updated",
		zap.String("product_id", product.ID),
		zap.String("old_price", oldPrice.String()),
		zap.String("new_price", rounded.String()),
		zap.String("actor", input.ActorID),
	)
	metrics.PriceUpdates.WithLabelValues(metrics.OutcomeOK).Inc()
	return nil
}

// BulkUpdatePrice applies one discount across a batch inside a single
// transaction. Unknown ids are skipped; any negative computed price aborts
// the whole batch.
func (uc *pricingUseCase) BulkUpdatePrice(ctx context.Context, input *dto.BulkUpdatePriceInput) error {
	if input.AdjustmentType != dto.AdjustmentPercentage && input.AdjustmentType != dto.AdjustmentFixed {
		metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeRejected).Inc()
		return apperrors.NewInvalidOperation("adjustment type must be %q or %q", dto.AdjustmentPercentage, dto.AdjustmentFixed)
	}

	tx, err := uc.repo.Begin(ctx)
	if err != nil {
		metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeError).Inc()
		return err
	}

	products, err := tx.FindByIDs(ctx, input.ProductIDs)
	if err != nil {
		tx.Rollback()
		metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeError).Inc()
		return err
	}

	if len(products) == 0 {
		tx.Rollback()
		uc.logger.Warn("bulk price update found no valid products", zap.Strings("product_ids", input.ProductIDs))
		metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeRejected).Inc()
		return apperrors.NewNotFound("no valid products found")
	}

	now := time.Now().UTC()

	for i := range products {
		product := &products[i]
		oldPrice := product.Price

		var newPrice decimal.Decimal
		if input.AdjustmentType == dto.AdjustmentPercentage {
			newPrice = oldPrice.Sub(oldPrice.Mul(input.Value).Div(oneHundred))
		} else {
			newPrice = oldPrice.Sub(input.Value)
		}
		newPrice = newPrice.Round(pricePrecision)

		if newPrice.IsNegative() {
			tx.Rollback()
			uc.logger.Warn("bulk price update aborted on negative price",
				zap.String("product_id", product.ID),
				zap.String("computed_price", newPrice.String()),
			)
			metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeRejected).Inc()
			return apperrors.NewInvalidOperation("adjustment would make price negative for product %s", product.Name)
		}

		if err := tx.UpdatePrice(ctx, product.ID, newPrice); err != nil {
			tx.Rollback()
			metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeError).Inc()
			return err
		}

		history := &model.ProductPriceHistory{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			OldPrice:        oldPrice,
			NewPrice:        newPrice,
			Reason:          input.Reason,
			ChangedByUserID: input.ActorID,
			ChangedAt:       now,
		}
		if err := tx.InsertHistory(ctx, history); err != nil {
			tx.Rollback()
			metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeError).Inc()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeError).Inc()
		return err
	}

	uc.invalidateListing(ctx)

	uc.logger.Info("bulk price update completed",
		zap.Int("updated", len(products)),
		zap.String("adjustment_type", input.AdjustmentType),
		zap.String("actor", input.ActorID),
	)
	metrics.BulkPriceUpdates.WithLabelValues(metrics.OutcomeOK).Inc()
	return nil
}

func (uc *pricingUseCase) invalidateListing(ctx context.Context) {
	if err := uc.invalidator.Invalidate(ctx); err != nil {
		// The snapshot expires on its own within 5 minutes; a failed
		// invalidation is not worth failing a committed price change.
		uc.logger.Error("failed to invalidate product listing cache", zap.Error(err))
		return
	}
	metrics.CacheInvalidations.Inc()
}
