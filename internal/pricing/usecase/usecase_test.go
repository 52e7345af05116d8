package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/internal/pricing"
	"github.com/Kamleshja/pims-service/internal/pricing/dto"
	"github.com/Kamleshja/pims-service/pkg/apperrors"
	"github.com/Kamleshja/pims-service/pkg/cache"
	"github.com/Kamleshja/pims-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePricingRepo struct {
	products  []model.Product
	histories []model.ProductPriceHistory

	lastTx *fakeTx

	beginErr             error
	updateWithHistoryErr error
}

func (f *fakePricingRepo) FindByID(_ context.Context, productID string) (*model.Product, error) {
	for i := range f.products {
		if f.products[i].ID == productID {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePricingRepo) UpdatePriceWithHistory(_ context.Context, productID string, price decimal.Decimal, h *model.ProductPriceHistory) error {
	if f.updateWithHistoryErr != nil {
		return f.updateWithHistoryErr
	}
	for i := range f.products {
		if f.products[i].ID == productID {
			f.products[i].Price = price
		}
	}
	f.histories = append(f.histories, *h)
	return nil
}

func (f *fakePricingRepo) Begin(_ context.Context) (pricing.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	f.lastTx = &fakeTx{repo: f}
	return f.lastTx, nil
}

// fakeTx buffers writes until Commit so rollback leaves the repo untouched,
// mirroring a real database transaction.
type fakeTx struct {
	repo *fakePricingRepo

	pendingPrices    map[string]decimal.Decimal
	pendingHistories []model.ProductPriceHistory

	committed  bool
	rolledBack bool

	updatePriceErr   error
	insertHistoryErr error
}

func (t *fakeTx) FindByIDs(_ context.Context, productIDs []string) ([]model.Product, error) {
	matched := []model.Product{}
	for _, id := range productIDs {
		for i := range t.repo.products {
			if t.repo.products[i].ID == id {
				matched = append(matched, t.repo.products[i])
			}
		}
	}
	return matched, nil
}

func (t *fakeTx) UpdatePrice(_ context.Context, productID string, price decimal.Decimal) error {
	if t.updatePriceErr != nil {
		return t.updatePriceErr
	}
	if t.pendingPrices == nil {
		t.pendingPrices = map[string]decimal.Decimal{}
	}
	t.pendingPrices[productID] = price
	return nil
}

func (t *fakeTx) InsertHistory(_ context.Context, h *model.ProductPriceHistory) error {
	if t.insertHistoryErr != nil {
		return t.insertHistoryErr
	}
	t.pendingHistories = append(t.pendingHistories, *h)
	return nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	for id, price := range t.pendingPrices {
		for i := range t.repo.products {
			if t.repo.products[i].ID == id {
				t.repo.products[i].Price = price
			}
		}
	}
	t.repo.histories = append(t.repo.histories, t.pendingHistories...)
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeInvalidator struct {
	calls int
	err   error
}

func (f *fakeInvalidator) Invalidate(_ context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.calls++
	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newPricingFixture(products ...model.Product) (*fakePricingRepo, *fakeInvalidator, pricing.UseCase) {
	repo := &fakePricingRepo{products: products}
	inv := &fakeInvalidator{}
	uc := NewPricingUseCase(repo, cache.NewMemoryCache(), inv, logger.NewNop())
	return repo, inv, uc
}

func TestUpdatePriceNotFound(t *testing.T) {
	_, inv, uc := newPricingFixture()

	err := uc.UpdatePrice(context.Background(), &dto.UpdatePriceInput{
		ProductID: "missing",
		NewPrice:  price("10"),
		Reason:    "sale",
		ActorID:   "user-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Zero(t, inv.calls)
}

func TestUpdatePriceNoopWhenRoundedEqual(t *testing.T) {
	repo, inv, uc := newPricingFixture(model.Product{ID: "p1", Name: "Widget", Price: price("20.00")})

	// 19.999 rounds to the stored 20.00: no history row, cache untouched.
	err := uc.UpdatePrice(context.Background(), &dto.UpdatePriceInput{
		ProductID: "p1",
		NewPrice:  price("19.999"),
		Reason:    "noop",
		ActorID:   "user-1",
	})
	require.NoError(t, err)

	assert.Empty(t, repo.histories)
	assert.Zero(t, inv.calls)
	assert.True(t, repo.products[0].Price.Equal(price("20.00")))
}

func TestUpdatePriceWritesHistoryAndInvalidates(t *testing.T) {
	repo, inv, uc := newPricingFixture(model.Product{ID: "p1", Name: "Widget", Price: price("20.00")})

	err := uc.UpdatePrice(context.Background(), &dto.UpdatePriceInput{
		ProductID: "p1",
		NewPrice:  price("24.995"),
		Reason:    "seasonal",
		ActorID:   "user-1",
	})
	require.NoError(t, err)

	assert.True(t, repo.products[0].Price.Equal(price("25.00")))
	require.Len(t, repo.histories, 1)
	h := repo.histories[0]
	assert.True(t, h.OldPrice.Equal(price("20.00")))
	assert.True(t, h.NewPrice.Equal(price("25.00")))
	assert.Equal(t, "seasonal", h.Reason)
	assert.Equal(t, "user-1", h.ChangedByUserID)
	assert.Equal(t, 1, inv.calls)
}

func TestUpdatePriceRepoFailurePropagates(t *testing.T) {
	repo, inv, uc := newPricingFixture(model.Product{ID: "p1", Price: price("20.00")})
	repo.updateWithHistoryErr = errors.New("write failed")

	err := uc.UpdatePrice(context.Background(), &dto.UpdatePriceInput{
		ProductID: "p1",
		NewPrice:  price("25.00"),
		Reason:    "x",
		ActorID:   "user-1",
	})
	require.EqualError(t, err, "write failed")
	assert.Empty(t, repo.histories)
	assert.Zero(t, inv.calls)
}

func TestBulkUpdateInvalidAdjustmentType(t *testing.T) {
	repo, inv, uc := newPricingFixture(model.Product{ID: "a", Price: price("100")})

	err := uc.BulkUpdatePrice(context.Background(), &dto.BulkUpdatePriceInput{
		ProductIDs:     []string{"a"},
		AdjustmentType: "Relative",
		Value:          price("10"),
		Reason:         "x",
		ActorID:        "user-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidOperation(err))
	assert.Nil(t, repo.lastTx)
	assert.Zero(t, inv.calls)
}

func TestBulkUpdateNoValidProducts(t *testing.T) {
	repo, inv, uc := newPricingFixture(model.Product{ID: "a", Price: price("100")})

	err := uc.BulkUpdatePrice(context.Background(), &dto.BulkUpdatePriceInput{
		ProductIDs:     []string{"x", "y"},
		AdjustmentType: dto.AdjustmentFixed,
		Value:          price("1"),
		Reason:         "x",
		ActorID:        "user-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.EqualError(t, err, "no valid products found")
	require.NotNil(t, repo.lastTx)
	assert.True(t, repo.lastTx.rolledBack)
	assert.False(t, repo.lastTx.committed)
	assert.Zero(t, inv.calls)
}

func TestBulkUpdateNegativePriceAbortsWholeBatch(t *testing.T) {
	repo, inv, uc := newPricingFixture(
		model.Product{ID: "a", Name: "Widget A", Price: price("500.00")},
		model.Product{ID: "b", Name: "Widget B", Price: price("2000.00")},
	)

	err := uc.BulkUpdatePrice(context.Background(), &dto.BulkUpdatePriceInput{
		ProductIDs:     []string{"a", "b"},
		AdjustmentType: dto.AdjustmentFixed,
		Value:          price("1000"),
		Reason:         "clearance",
		ActorID:        "user-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidOperation(err))
	assert.Contains(t, err.Error(), "Widget A")

	require.NotNil(t, repo.lastTx)
	assert.True(t, repo.lastTx.rolledBack)
	assert.False(t, repo.lastTx.committed)

	// Nothing in the batch changed, even the individually valid product.
	assert.True(t, repo.products[0].Price.Equal(price("500.00")))
	assert.True(t, repo.products[1].Price.Equal(price("2000.00")))
	assert.Empty(t, repo.histories)
	assert.Zero(t, inv.calls)
}

func TestBulkUpdatePercentageCommitsAll(t *testing.T) {
	repo, inv, uc := newPricingFixture(
		model.Product{ID: "a", Name: "Widget A", Price: price("100.00")},
		model.Product{ID: "b", Name: "Widget B", Price: price("50.00")},
	)

	err := uc.BulkUpdatePrice(context.Background(), &dto.BulkUpdatePriceInput{
		ProductIDs:     []string{"a", "b"},
		AdjustmentType: dto.AdjustmentPercentage,
		Value:          price("10"),
		Reason:         "promo",
		ActorID:        "user-1",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastTx)
	assert.True(t, repo.lastTx.committed)
	assert.False(t, repo.lastTx.rolledBack)

	assert.True(t, repo.products[0].Price.Equal(price("90.00")))
	assert.True(t, repo.products[1].Price.Equal(price("45.00")))
	require.Len(t, repo.histories, 2)
	assert.Equal(t, 1, inv.calls, "exactly one cache invalidation per batch")
}

func TestBulkUpdateSkipsUnknownIDs(t *testing.T) {
	repo, _, uc := newPricingFixture(model.Product{ID: "a", Name: "Widget A", Price: price("100.00")})

	err := uc.BulkUpdatePrice(context.Background(), &dto.BulkUpdatePriceInput{
		ProductIDs:     []string{"a", "ghost"},
		AdjustmentType: dto.AdjustmentFixed,
		Value:          price("10"),
		Reason:         "promo",
		ActorID:        "user-1",
	})
	require.NoError(t, err)

	assert.True(t, repo.products[0].Price.Equal(price("90.00")))
	require.Len(t, repo.histories, 1)
	assert.Equal(t, "a", repo.histories[0].ProductID)
}

func TestBulkUpdateRoundsToTwoDecimals(t *testing.T) {
	repo, _, uc := newPricingFixture(model.Product{ID: "a", Name: "Widget A", Price: price("19.99")})

	err := uc.BulkUpdatePrice(context.Background(), &dto.BulkUpdatePriceInput{
		ProductIDs:     []string{"a"},
		AdjustmentType: dto.AdjustmentPercentage,
		Value:          price("10"),
		Reason:         "promo",
		ActorID:        "user-1",
	})
	require.NoError(t, err)

	// 19.99 - 1.999 = 17.991, rounded to 17.99.
	assert.True(t, repo.products[0].Price.Equal(price("17.99")))
}

func TestBulkUpdatePersistenceErrorRollsBack(t *testing.T) {
	repo, inv, uc := newPricingFixture(
		model.Product{ID: "a", Name: "Widget A", Price: price("100.00")},
		model.Product{ID: "b", Name: "Widget B", Price: price("50.00")},
	)

	// Fail the first history insert; the usecase must roll back and re-raise.
	failErr := errors.New("disk full")
	repoWithFailure := &failingHistoryRepo{inner: repo, err: failErr}
	uc = NewPricingUseCase(repoWithFailure, cache.NewMemoryCache(), inv, logger.NewNop())

	err := uc.BulkUpdatePrice(context.Background(), &dto.BulkUpdatePriceInput{
		ProductIDs:     []string{"a", "b"},
		AdjustmentType: dto.AdjustmentFixed,
		Value:          price("10"),
		Reason:         "promo",
		ActorID:        "user-1",
	})
	require.ErrorIs(t, err, failErr)

	require.NotNil(t, repo.lastTx)
	assert.True(t, repo.lastTx.rolledBack)
	assert.False(t, repo.lastTx.committed)
	assert.True(t, repo.products[0].Price.Equal(price("100.00")))
	assert.Empty(t, repo.histories)
	assert.Zero(t, inv.calls)
}

// failingHistoryRepo injects an InsertHistory failure into transactions
// handed out by the wrapped repo.
type failingHistoryRepo struct {
	inner *fakePricingRepo
	err   error
}

func (f *failingHistoryRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return f.inner.FindByID(ctx, id)
}

func (f *failingHistoryRepo) UpdatePriceWithHistory(ctx context.Context, id string, p decimal.Decimal, h *model.ProductPriceHistory) error {
	return f.inner.UpdatePriceWithHistory(ctx, id, p, h)
}

func (f *failingHistoryRepo) Begin(ctx context.Context) (pricing.Tx, error) {
	tx, err := f.inner.Begin(ctx)
	if err != nil {
		return nil, err
	}
	f.inner.lastTx.insertHistoryErr = f.err
	return tx, nil
}
