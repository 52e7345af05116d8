package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name              string
	Description       string
	SKU               string
	Price             decimal.Decimal
	LowStockThreshold int
	CategoryIDs       []string
}
