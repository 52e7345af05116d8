package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/internal/pricing"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) UpdatePriceWithHistory(ctx context.Context, productID string, price decimal.Decimal, h *model.ProductPriceHistory) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE products SET price = $1 WHERE id = $2`, price, productID); err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}

	if _, err := tx.NamedExecContext(ctx, insertHistoryQuery, h); err != nil {
		return fmt.Errorf("failed to append price history: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) Begin(ctx context.Context) (pricing.Tx, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &pgTx{tx: tx}, nil
}

type pgTx struct {
	tx *sqlx.Tx
}

func (t *pgTx) FindByIDs(ctx context.Context, productIDs []string) ([]model.Product, error) {
	products := []model.Product{}
	if len(productIDs) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE id IN (?)`, productIDs)
	if err != nil {
		return nil, err
	}
	query = t.tx.Rebind(query)

	if err := t.tx.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (t *pgTx) UpdatePrice(ctx context.Context, productID string, price decimal.Decimal) error {
	if _, err := t.tx.ExecContext(ctx, `UPDATE products SET price = $1 WHERE id = $2`, price, productID); err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}
	return nil
}

func (t *pgTx) InsertHistory(ctx context.Context, h *model.ProductPriceHistory) error {
	if _, err := t.tx.NamedExecContext(ctx, insertHistoryQuery, h); err != nil {
		return fmt.Errorf("failed to append price history: %w", err)
	}
	return nil
}

func (t *pgTx) Commit() error {
	return t.tx.Commit()
}

func (t *pgTx) Rollback() error {
	return t.tx.Rollback()
}

const insertHistoryQuery = `
    INSERT INTO product_price_histories (
        id, product_id, old_price, new_price, reason, changed_by_user_id, changed_at
    )
    VALUES (
        :id, :product_id, :old_price, :new_price, :reason, :changed_by_user_id, :changed_at
    )
`
