package dto

type AdjustStockResult struct {
	ProductID     string `json:"product_id"`
	NewQuantity   int    `json:"new_quantity"`
	LowStockAlert bool   `json:"low_stock_alert"`
}

// LowStockAlert is derived per call from current state and never persisted.

type LowStockProduct struct {
	ProductID         string `db:"product_id" json:"product_id"`
	Name              string `db:"name" json:"name"`
	CurrentQuantity   int    `db:"current_quantity" json:"current_quantity"`
	LowStockThreshold int    `db:"low_stock_threshold" json:"low_stock_threshold"`
}
