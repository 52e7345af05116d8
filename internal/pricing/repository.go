package pricing

import (
	"context"

	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/shopspring/decimal"
)

// Tx is one explicit unit of work spanning a bulk update. Everything written
// through it commits or rolls back together.
type Tx interface {
	// FindByIDs returns the products whose ids exist; unknown ids are
	// silently dropped from the result.
	FindByIDs(ctx context.Context, productIDs []string) ([]model.Product, error)
	UpdatePrice(ctx context.Context, productID string, price decimal.Decimal) error
	InsertHistory(ctx context.Context, h *model.ProductPriceHistory) error
	Commit() error
	Rollback() error
}

type Repository interface {
	// FindByID returns nil, nil when the product does not exist.
	FindByID(ctx context.Context, productID string) (*model.Product, error)

	// UpdatePriceWithHistory applies the new price and appends the history
	// row as one atomic unit.
	UpdatePriceWithHistory(ctx context.Context, productID string, price decimal.Decimal, h *model.ProductPriceHistory) error

	Begin(ctx context.Context) (Tx, error)
}
