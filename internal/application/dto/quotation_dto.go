package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuotationRequest body para POST /api/quotations.
type CreateQuotationRequest struct {
	PatientID string            `json:"patient_id"`
	ValidDays int               `json:"valid_days"` // 0 = 15 días por defecto
	Items     []SaleItemRequest `json:"items" validate:"required,min=1"`
}

// QuotationItemResponse línea de cotización.
type QuotationItemResponse struct {
	DrugID    string          `json:"drug_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID        string                  `json:"id"`
	Number    string                  `json:"number"`
	PatientID string                  `json:"patient_id,omitempty"`
	Total     decimal.Decimal         `json:"total"`
	Status    string                  `json:"status"`
	SaleID    string                  `json:"sale_id,omitempty"`
	ValidTo   time.Time               `json:"valid_to"`
	Items     []QuotationItemResponse `json:"items"`
	CreatedAt time.Time               `json:"created_at"`
}
