package category

import (
	"context"

	"github.com/Kamleshja/pims-service/internal/model"
)

// Repository covers the category reads product creation needs; category CRUD
// itself lives outside this service.
type Repository interface {
	FindByIDs(ctx context.Context, categoryIDs []string) ([]model.Category, error)
}
