package dto

import "github.com/shopspring/decimal"

// ProductListItem is one row of the materialized product listing snapshot.
type ProductListItem struct {
	ID       string          `db:"id" json:"id"`
	Name     string          `db:"name" json:"name"`
	SKU      string          `db:"sku" json:"sku"`
	Price    decimal.Decimal `db:"price" json:"price"`
	Quantity int             `db:"quantity" json:"quantity"`
}
