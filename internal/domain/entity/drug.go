package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Drug representa un medicamento o producto de la farmacia.
// Quantity es el saldo autoritativo del libro de movimientos: solo se modifica
// vía el registro de movimientos, nunca por update directo.
type Drug struct {
	ID           string
	SKU          string // código único (código de barras o interno)
	Name         string
	GenericName  string
	Description  string
	Category     string
	Unit         string // etiqueta de presentación: tableta, frasco, caja
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo unitario de compra
	Quantity     int64           // saldo actual, siempre >= 0
	ReorderLevel int64           // umbral de reposición, >= 0
	ExpiryDate   *time.Time      // nil = sin vencimiento
	Active       bool            // borrado lógico: false = inactivo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
