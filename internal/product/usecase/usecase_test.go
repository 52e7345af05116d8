package usecase

import (
	"context"
	"testing"

	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/internal/product"
	"github.com/Kamleshja/pims-service/internal/product/dto"
	"github.com/Kamleshja/pims-service/pkg/apperrors"
	"github.com/Kamleshja/pims-service/pkg/cache"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	skus       map[string]bool
	created    *model.Product
	createdInv *model.Inventory
	linked     []string
	listing    []dto.ProductListItem
	listCalls  int
}

func (f *fakeProductRepo) Create(_ context.Context, p *model.Product, inv *model.Inventory, categoryIDs []string) error {
	f.created = p
	f.createdInv = inv
	f.linked = categoryIDs
	return nil
}

func (f *fakeProductRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	return f.skus[sku], nil
}

func (f *fakeProductRepo) ListWithQuantity(_ context.Context) ([]dto.ProductListItem, error) {
	f.listCalls++
	return f.listing, nil
}

type fakeCategoryRepo struct {
	categories map[string]model.Category
}

func (f *fakeCategoryRepo) FindByIDs(_ context.Context, ids []string) ([]model.Category, error) {
	found := []model.Category{}
	for _, id := range ids {
		if c, ok := f.categories[id]; ok {
			found = append(found, c)
		}
	}
	return found, nil
}

func newFixture() (*fakeProductRepo, *product.ListingCache, product.UseCase) {
	repo := &fakeProductRepo{skus: map[string]bool{}}
	catRepo := &fakeCategoryRepo{categories: map[string]model.Category{
		"c1": {ID: "c1", Name: "Tools"},
	}}
	listing := product.NewListingCache(cache.NewMemoryCache())
	uc := NewProductUseCase(repo, catRepo, listing, logger.NewNop())
	return repo, listing, uc
}

func TestCreateProductRoundsPriceAndSeedsInventory(t *testing.T) {
	repo, _, uc := newFixture()

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:              "Hammer",
		SKU:               "HAM-1",
		Price:             decimal.RequireFromString("9.999"),
		LowStockThreshold: 2,
		CategoryIDs:       []string{"c1"},
	})
	require.NoError(t, err)

	assert.True(t, p.Price.Equal(decimal.RequireFromString("10.00")))
	require.NotNil(t, repo.createdInv)
	assert.Equal(t, 0, repo.createdInv.Quantity)
	assert.Equal(t, p.ID, repo.createdInv.ProductID)
	assert.Equal(t, "Default", repo.createdInv.WarehouseLocation)
	assert.Equal(t, []string{"c1"}, repo.linked)
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	repo, _, uc := newFixture()
	repo.skus["HAM-1"] = true

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:        "Hammer",
		SKU:         "HAM-1",
		Price:       decimal.NewFromInt(10),
		CategoryIDs: []string{"c1"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidOperation(err))
	assert.Nil(t, repo.created)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	repo, _, uc := newFixture()

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:        "Hammer",
		SKU:         "HAM-2",
		Price:       decimal.NewFromInt(10),
		CategoryIDs: []string{"c1", "ghost"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidOperation(err))
	assert.Nil(t, repo.created)
}

func TestListProductsCachesSnapshot(t *testing.T) {
	repo, _, uc := newFixture()
	repo.listing = []dto.ProductListItem{
		{ID: "p1", Name: "Hammer", SKU: "HAM-1", Price: decimal.NewFromInt(10), Quantity: 4},
	}

	first, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.listCalls)

	// Second read is served from the snapshot.
	second, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "p1", second[0].ID)
	assert.Equal(t, 1, repo.listCalls)
}

func TestListProductsRefetchesAfterInvalidation(t *testing.T) {
	repo, listing, uc := newFixture()
	repo.listing = []dto.ProductListItem{{ID: "p1", Name: "Hammer", SKU: "HAM-1"}}

	_, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.NoError(t, listing.Invalidate(context.Background()))

	_, err = uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestCreateProductInvalidatesListing(t *testing.T) {
	repo, _, uc := newFixture()
	repo.listing = []dto.ProductListItem{{ID: "p1"}}

	_, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, repo.listCalls)

	_, err = uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:        "Hammer",
		SKU:         "HAM-3",
		Price:       decimal.NewFromInt(10),
		CategoryIDs: []string{"c1"},
	})
	require.NoError(t, err)

	_, err = uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}
