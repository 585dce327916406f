package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDrugRequest entrada para crear un medicamento.
// InitialQuantity > 0 genera un movimiento "in" inicial (el saldo nunca se setea directo).
type CreateDrugRequest struct {
	SKU             string          `json:"sku" validate:"required,min=1,max=100"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	GenericName     string          `json:"generic_name"`
	Description     string          `json:"description"`
	Category        string          `json:"category"`
	Unit            string          `json:"unit" validate:"required"`
	Price           decimal.Decimal `json:"price"`
	Cost            decimal.Decimal `json:"cost"`
	ReorderLevel    int64           `json:"reorder_level" validate:"min=0"`
	ExpiryDate      *time.Time      `json:"expiry_date"`
	InitialQuantity int64           `json:"initial_quantity" validate:"min=0"`
}

// UpdateDrugRequest entrada para actualizar un medicamento (sin Quantity: se maneja vía movimientos).
type UpdateDrugRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	GenericName  *string          `json:"generic_name"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Unit         *string          `json:"unit"`
	Price        *decimal.Decimal `json:"price"`
	Cost         *decimal.Decimal `json:"cost"`
	ReorderLevel *int64           `json:"reorder_level" validate:"omitempty,min=0"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
}

// DrugResponse salida de un medicamento con sus estados derivados.
// StockStatus y ExpiryStatus se recalculan en cada lectura, nunca se persisten.
type DrugResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	GenericName  string          `json:"generic_name,omitempty"`
	Description  string          `json:"description,omitempty"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	Quantity     int64           `json:"quantity"`
	ReorderLevel int64           `json:"reorder_level"`
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
	StockStatus  string          `json:"stock_status"`
	ExpiryStatus string          `json:"expiry_status"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DrugListResponse lista paginada de medicamentos.
type DrugListResponse struct {
	Items []DrugResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
