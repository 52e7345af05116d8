package product

import (
	"context"

	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	ListProducts(ctx context.Context) ([]dto.ProductListItem, error)
}
