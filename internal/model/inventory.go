package model

import "time"

type Inventory struct {
	ID                string    `db:"id" json:"id"`
	ProductID         string    `db:"product_id" json:"product_id"`
	Quantity          int       `db:"quantity" json:"quantity"` // Never negative
	WarehouseLocation string    `db:"warehouse_location" json:"warehouse_location"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// InventoryTransaction is one immutable ledger entry. Rows are written only as
// a side effect of a successful stock adjustment and are never updated or
// deleted.
type InventoryTransaction struct {
	ID              string    `db:"id" json:"id"`
	ProductID       string    `db:"product_id" json:"product_id"`
	QuantityChanged int       `db:"quantity_changed" json:"quantity_changed"`
	Reason          string    `db:"reason" json:"reason"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	CreatedByUserID string    `db:"created_by_user_id" json:"created_by_user_id"`
}
