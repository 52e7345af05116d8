package usecase

import (
	"context"
	"time"

	"github.com/Kamleshja/pims-service/internal/category"
	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/internal/product"
	"github.com/Kamleshja/pims-service/internal/product/dto"
	"github.com/Kamleshja/pims-service/pkg/apperrors"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo    product.Repository
	catRepo category.Repository
	listing *product.ListingCache
	logger  logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, catRepo category.Repository, listing *product.ListingCache, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:    repo,
		catRepo: catRepo,
		listing: listing,
		logger:  log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	exists, err := uc.repo.ExistsBySKU(ctx, input.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		uc.logger.Warn("SKU already exists", zap.String("sku", input.SKU))
		return nil, apperrors.NewInvalidOperation("SKU already exists")
	}

	categories, err := uc.catRepo.FindByIDs(ctx, input.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(input.CategoryIDs) {
		uc.logger.Warn("invalid category ids on product create")
		return nil, apperrors.NewInvalidOperation("one or more categories not found")
	}

	now := time.Now().UTC()
	p := &model.Product{
		ID:                uuid.New().String(),
		Name:              input.Name,
		Description:       input.Description,
		SKU:               input.SKU,
		Price:             input.Price.Round(2),
		LowStockThreshold: input.LowStockThreshold,
		CreatedAt:         now,
	}
	inv := &model.Inventory{
		ID:                uuid.New().String(),
		ProductID:         p.ID,
		Quantity:          0,
		WarehouseLocation: "Default",
		UpdatedAt:         now,
	}

	if err := uc.repo.Create(ctx, p, inv, input.CategoryIDs); err != nil {
		return nil, err
	}

	if err := uc.listing.Invalidate(ctx); err != nil {
		uc.logger.Error("failed to invalidate product listing cache", zap.Error(err))
	}

	uc.logger.Info("product created", zap.String("product_id", p.ID), zap.String("sku", p.SKU))
	p.Inventory = inv
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]dto.ProductListItem, error) {
	items, ok, err := uc.listing.Get(ctx)
	if err != nil {
		uc.logger.Error("product listing cache read failed", zap.Error(err))
	}
	if ok {
		uc.logger.Debug("product listing served from cache")
		return items, nil
	}

	items, err = uc.repo.ListWithQuantity(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.listing.Set(ctx, items); err != nil {
		uc.logger.Error("failed to cache product listing", zap.Error(err))
	}

	return items, nil
}
