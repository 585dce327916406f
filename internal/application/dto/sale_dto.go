package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta (o cotización).
// UnitPrice en cero = usar precio de lista del medicamento.
type SaleItemRequest struct {
	DrugID    string          `json:"drug_id" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	PatientID string            `json:"patient_id"`
	Discount  decimal.Decimal   `json:"discount"`
	Items     []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// SaleItemResponse línea de venta en la respuesta.
type SaleItemResponse struct {
	DrugID    string          `json:"drug_id"`
	DrugName  string          `json:"drug_name"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID        string             `json:"id"`
	Number    string             `json:"number"`
	PatientID string             `json:"patient_id,omitempty"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Discount  decimal.Decimal    `json:"discount"`
	Total     decimal.Decimal    `json:"total"`
	Status    string             `json:"status"`
	Items     []SaleItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
	CreatedBy string             `json:"created_by"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
