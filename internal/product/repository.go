package product

import (
	"context"

	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/internal/product/dto"
)

type Repository interface {
	// Create inserts the product, its category links and its zero-quantity
	// inventory row in one transaction.
	Create(ctx context.Context, p *model.Product, inv *model.Inventory, categoryIDs []string) error

	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// ListWithQuantity materializes the product listing, quantity 0 for
	// products without an inventory row.
	ListWithQuantity(ctx context.Context) ([]dto.ProductListItem, error)
}
