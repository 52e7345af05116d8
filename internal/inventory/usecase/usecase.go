package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Kamleshja/pims-service/internal/inventory"
	"github.com/Kamleshja/pims-service/internal/inventory/dto"
	"github.com/Kamleshja/pims-service/internal/metrics"
	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/pkg/apperrors"
	"github.com/Kamleshja/pims-service/pkg/cache"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

type inventoryUseCase struct {
	repo   inventory.Repository
	locker cache.Locker
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, locker cache.Locker, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		locker: locker,
		logger: log,
	}
}

// AdjustStock applies a signed quantity change and appends one ledger entry
// atomically. The per-product lock closes the read-modify-write race between
// concurrent adjustments.
func (uc *inventoryUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.AdjustStockResult, error) {
	lockKey := fmt.Sprintf("lock:inventory:%s", input.ProductID)
	lockToken := uuid.New().String()

	acquired := false
	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, lockKey, lockToken, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire inventory lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(lockBackoff)
	}
	if !acquired {
		metrics.StockAdjustments.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, apperrors.NewInvalidOperation("inventory busy, please retry")
	}
	defer uc.locker.ReleaseLock(ctx, lockKey, lockToken)

	product, err := uc.repo.GetProduct(ctx, input.ProductID)
	if err != nil {
		metrics.StockAdjustments.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	if product == nil {
		uc.logger.Warn("product not found for stock adjustment", zap.String("product_id", input.ProductID))
		metrics.StockAdjustments.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, apperrors.NewNotFound("product not found")
	}

	inv, err := uc.repo.GetByProduct(ctx, input.ProductID)
	if err != nil {
		metrics.StockAdjustments.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	if inv == nil {
		uc.logger.Warn("inventory record missing", zap.String("product_id", input.ProductID))
		metrics.StockAdjustments.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, apperrors.NewNotFound("inventory record not found")
	}

	newQuantity := inv.Quantity + input.QuantityChange
	if newQuantity < 0 {
		uc.logger.Warn("insufficient stock",
			zap.String("product_id", input.ProductID),
			zap.Int("quantity", inv.Quantity),
			zap.Int("change", input.QuantityChange),
		)
		metrics.StockAdjustments.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, apperrors.NewInvalidOperation("insufficient stock")
	}

	now := time.Now().UTC()
	inv.Quantity = newQuantity
	inv.UpdatedAt = now

	entry := &model.InventoryTransaction{
		ID:              uuid.New().String(),
		ProductID:       product.ID,
		QuantityChanged: input.QuantityChange,
		Reason:          input.Reason,
		CreatedAt:       now,
		CreatedByUserID: input.ActorID,
	}

	if err := uc.repo.AdjustStockWithTransaction(ctx, inv, entry); err != nil {
		metrics.StockAdjustments.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	lowStock := newQuantity <= product.LowStockThreshold
	if lowStock {
		uc.logger.Warn("low stock alert",
			zap.String("product_id", product.ID),
			zap.Int("quantity", newQuantity),
			zap.Int("threshold", product.LowStockThreshold),
		)
	}

	uc.logger.Info("inventory adjusted",
		zap.String("product_id", product.ID),
		zap.Int("change", input.QuantityChange),
		zap.Int("new_quantity", newQuantity),
		zap.String("actor", input.ActorID),
	)
	metrics.StockAdjustments.WithLabelValues(metrics.OutcomeOK).Inc()

	return &dto.AdjustStockResult{
		ProductID:     product.ID,
		NewQuantity:   newQuantity,
		LowStockAlert: lowStock,
	}, nil
}

func (uc *inventoryUseCase) GetHistory(ctx context.Context, productID *string) ([]model.InventoryTransaction, error) {
	return uc.repo.ListTransactions(ctx, productID)
}

func (uc *inventoryUseCase) GetLowStockProducts(ctx context.Context) ([]dto.LowStockProduct, error) {
	return uc.repo.FindLowStock(ctx)
}
