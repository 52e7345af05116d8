package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kamleshja/pims-service/internal/inventory/dto"
	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
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

func (r *PGRepository) GetByProduct(ctx context.Context, productID string) (*model.Inventory, error) {
	var inv model.Inventory
	query := `SELECT * FROM inventory WHERE product_id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &inv, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *PGRepository) AdjustStockWithTransaction(ctx context.Context, inv *model.Inventory, entry *model.InventoryTransaction) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
        UPDATE inventory
        SET quantity = :quantity,
            updated_at = :updated_at
        WHERE id = :id
    `
	if _, err := tx.NamedExecContext(ctx, updateQuery, inv); err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}

	insertQuery := `
        INSERT INTO inventory_transactions (
            id, product_id, quantity_changed, reason, created_at, created_by_user_id
        )
        VALUES (
            :id, :product_id, :quantity_changed, :reason, :created_at, :created_by_user_id
        )
    `
	if _, err := tx.NamedExecContext(ctx, insertQuery, entry); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ListTransactions(ctx context.Context, productID *string) ([]model.InventoryTransaction, error) {
	items := []model.InventoryTransaction{}

	if productID != nil && *productID != "" {
		query := `SELECT * FROM inventory_transactions WHERE product_id = $1 ORDER BY created_at DESC`
		if err := r.DB.SelectContext(ctx, &items, query, *productID); err != nil {
			return nil, err
		}
		return items, nil
	}

	query := `SELECT * FROM inventory_transactions ORDER BY created_at DESC`
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PGRepository) FindLowStock(ctx context.Context) ([]dto.LowStockProduct, error) {
	items := []dto.LowStockProduct{}
	query := `
        SELECT p.id AS product_id,
               p.name AS name,
               i.quantity AS current_quantity,
               p.low_stock_threshold AS low_stock_threshold
        FROM products p
        JOIN inventory i ON i.product_id = p.id
        WHERE i.quantity <= p.low_stock_threshold
        ORDER BY i.quantity ASC
    `
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}
