package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuotationStatusOpen      = "open"
	QuotationStatusConverted = "converted" // convertida en venta
	QuotationStatusExpired   = "expired"
)

// Quotation representa una cotización: no afecta el inventario hasta convertirse en venta.
type Quotation struct {
	ID        string
	Number    string
	PatientID string
	Total     decimal.Decimal
	Status    string
	SaleID    string // venta generada al convertir, vacío si sigue abierta
	ValidTo   time.Time
	CreatedAt time.Time
	CreatedBy string
}

// QuotationItem representa una línea de cotización.
type QuotationItem struct {
	ID          string
	QuotationID string
	DrugID      string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
