package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	DrugID   string          `json:"drug_id" validate:"required"`
	Quantity int64           `json:"quantity" validate:"required,min=1"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	Supplier  string                `json:"supplier" validate:"required"`
	Reference string                `json:"reference"`
	Items     []PurchaseItemRequest `json:"items" validate:"required,min=1"`
}

// PurchaseItemResponse línea de compra en la respuesta.
type PurchaseItemResponse struct {
	DrugID   string          `json:"drug_id"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID        string                 `json:"id"`
	Number    string                 `json:"number"`
	Supplier  string                 `json:"supplier"`
	Reference string                 `json:"reference,omitempty"`
	Total     decimal.Decimal        `json:"total"`
	Items     []PurchaseItemResponse `json:"items"`
	CreatedAt time.Time              `json:"created_at"`
	CreatedBy string                 `json:"created_by"`
}
