package domain

// PurchaseRequest é o payload esperado para POST /api/sweets/{id}/purchase.
type PurchaseRequest struct {
	Quantity int `json:"quantity"`
}

// RestockRequest é o payload esperado para POST /api/sweets/{id}/restock.
type RestockRequest struct {
	Quantity int `json:"quantity"`
}

// PurchaseResult é o resultado transitório de uma compra (não é persistido).
type PurchaseResult struct {
	Sweet       Sweet   `json:"sweet"`
	Remaining   int     `json:"quantity"`    // Quantidade restante após a compra
	TotalAmount float64 `json:"totalAmount"` // price × quantidade, arredondado a 2 casas
}
