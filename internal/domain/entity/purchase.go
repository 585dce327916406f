package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase representa una compra a proveedor que ingresa stock.
type Purchase struct {
	ID        string
	Number    string // consecutivo legible
	Supplier  string
	Reference string // número de factura del proveedor
	Total     decimal.Decimal
	CreatedAt time.Time
	CreatedBy string
}

// PurchaseItem representa una línea de compra.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	DrugID     string
	Quantity   int64
	UnitCost   decimal.Decimal
	Subtotal   decimal.Decimal
}
