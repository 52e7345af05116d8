package dto

import "github.com/shopspring/decimal"

const (
	AdjustmentPercentage = "Percentage"
	AdjustmentFixed      = "Fixed"
)

type UpdatePriceInput struct {
	ProductID string
	NewPrice  decimal.Decimal
	Reason    string
	ActorID   string
}

// BulkUpdatePriceInput describes one batch discount. Value is applied as a
// reduction: Percentage takes value% off each price, Fixed subtracts value.
// Value > 0 is enforced by the caller.
type BulkUpdatePriceInput struct {
	ProductIDs     []string
	AdjustmentType string
	Value          decimal.Decimal
	Reason         string
	ActorID        string
}
