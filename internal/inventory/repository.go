package inventory

import (
	"context"

	"github.com/Kamleshja/pims-service/internal/inventory/dto"
	"github.com/Kamleshja/pims-service/internal/model"
)

type Repository interface {
	// GetProduct returns nil, nil when the product does not exist.
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	// GetByProduct returns nil, nil when the product has no inventory record.
	GetByProduct(ctx context.Context, productID string) (*model.Inventory, error)

	// AdjustStockWithTransaction applies the new quantity and appends the
	// ledger entry as one atomic unit.
	AdjustStockWithTransaction(ctx context.Context, inv *model.Inventory, entry *model.InventoryTransaction) error

	// ListTransactions returns ledger entries ordered by creation time
	// descending, optionally filtered to one product.
	ListTransactions(ctx context.Context, productID *string) ([]model.InventoryTransaction, error)

	// FindLowStock is a live query over the latest committed state.
	FindLowStock(ctx context.Context) ([]dto.LowStockProduct, error)
}
