package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductPriceHistory records one price change. Exactly one row is written per
// mutation that actually changes the stored price; rows are immutable.
type ProductPriceHistory struct {
	ID              string          `db:"id" json:"id"`
	ProductID       string          `db:"product_id" json:"product_id"`
	OldPrice        decimal.Decimal `db:"old_price" json:"old_price"`
	NewPrice        decimal.Decimal `db:"new_price" json:"new_price"`
	Reason          string          `db:"reason" json:"reason"`
	ChangedByUserID string          `db:"changed_by_user_id" json:"changed_by_user_id"`
	ChangedAt       time.Time       `db:"changed_at" json:"changed_at"`
}
