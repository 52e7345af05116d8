package repository

import (
	"context"
	"fmt"

	"github.com/Kamleshja/pims-service/internal/model"
	"github.com/Kamleshja/pims-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product, inv *model.Inventory, categoryIDs []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	productQuery := `
        INSERT INTO products (
            id, name, description, sku, price, low_stock_threshold, created_at
        )
        VALUES (
            :id, :name, :description, :sku, :price, :low_stock_threshold, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, productQuery, p); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	for _, categoryID := range categoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_categories (product_id, category_id) VALUES ($1, $2)`,
			p.ID, categoryID,
		); err != nil {
			return fmt.Errorf("failed to link category: %w", err)
		}
	}

	inventoryQuery := `
        INSERT INTO inventory (
            id, product_id, quantity, warehouse_location, updated_at
        )
        VALUES (
            :id, :product_id, :quantity, :warehouse_location, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, inventoryQuery, inv); err != nil {
		return fmt.Errorf("failed to insert inventory: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM products WHERE sku = $1`, sku); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PGRepository) ListWithQuantity(ctx context.Context) ([]dto.ProductListItem, error) {
	items := []dto.ProductListItem{}
	query := `
        SELECT p.id, p.name, p.sku, p.price,
               COALESCE(i.quantity, 0) AS quantity
        FROM products p
        LEFT JOIN inventory i ON i.product_id = p.id
        ORDER BY p.created_at DESC
    `
	if err := r.DB.SelectContext(ctx, &items, query); err != nil {
		return nil, err
	}
	return items, nil
}
