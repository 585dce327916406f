package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided" // anulada; los movimientos compensatorios quedan en el libro
)

// Sale representa la cabecera de una venta (ticket POS).
type Sale struct {
	ID         string
	Number     string // consecutivo legible para el recibo
	PatientID  string // opcional: venta a paciente/estudiante registrado
	Subtotal   decimal.Decimal
	Discount   decimal.Decimal
	Total      decimal.Decimal
	Status     string
	CreatedAt  time.Time
	CreatedBy  string // UserID del vendedor
}

// SaleItem representa una línea de venta.
type SaleItem struct {
	ID        string
	SaleID    string
	DrugID    string
	DrugName  string // snapshot del nombre al momento de la venta (para el recibo)
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
