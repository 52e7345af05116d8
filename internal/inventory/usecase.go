package inventory

import (
	"context"

	"github.com/Kamleshja/pims-service/internal/inventory/dto"
	"github.com/Kamleshja/pims-service/internal/model"
)

type UseCase interface {
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*dto.AdjustStockResult, error)
	GetHistory(ctx context.Context, productID *string) ([]model.InventoryTransaction, error)
	GetLowStockProducts(ctx context.Context) ([]dto.LowStockProduct, error)
}
