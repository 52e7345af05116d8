package dto

type AdjustStockInput struct {
	ProductID      string
	QuantityChange int
	Reason         string
	ActorID        string
}
