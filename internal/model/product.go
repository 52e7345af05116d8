package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID                string          `db:"id" json:"id"`
	Name              string          `db:"name" json:"name"`
	Description       string          `db:"description" json:"description"`
	SKU               string          `db:"sku" json:"sku"`
	Price             decimal.Decimal `db:"price" json:"price"`
	LowStockThreshold int             `db:"low_stock_threshold" json:"low_stock_threshold"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`

	Inventory *Inventory `db:"-" json:"inventory,omitempty"` // Joined data
}

type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ProductCategory is the many-to-many link row between products and categories.
type ProductCategory struct {
	ProductID  string `db:"product_id"`
	CategoryID string `db:"category_id"`
}
