// Package inventory contiene los servicios de dominio puros del inventario:
// clasificación de stock y vencimiento, sugerencia de reposición y estadísticas
// de uso. Todas las funciones son deterministas y reciben `now` explícito
// donde aplica: mismo input, mismo output, sin estado oculto ni reloj ambiente.
package inventory

import (
	"math"
	"time"
)

// Estados de stock derivados de (quantity, reorderLevel).
const (
	StockStatusOut         = "out_of_stock"
	StockStatusLow         = "low_stock"
	StockStatusNearReorder = "near_reorder"
	StockStatusIn          = "in_stock"
)

// Estados de vencimiento derivados de (expiryDate, now).
const (
	ExpiryStatusNone     = "no_expiry"
	ExpiryStatusExpired  = "expired"
	ExpiryStatusSoon     = "expiring_soon"
	ExpiryStatusValid    = "valid"
)

const (
	// ExpiringSoonDays ventana de alerta temprana de vencimiento.
	ExpiringSoonDays = 30

	// nearReorderNum/nearReorderDen codifican el margen del 10% sobre el punto
	// de reorden (quantity <= reorderLevel * 1.1) en aritmética entera exacta.
	// Heurística fija, no configurable por medicamento.
	nearReorderNum = 11
	nearReorderDen = 10
)

// StockStatus clasifica el saldo frente al punto de reorden.
// Los límites son inclusivos hacia la clasificación más baja:
// quantity == reorderLevel es low_stock, no near_reorder.
func StockStatus(quantity, reorderLevel int64) string {
	switch {
	case quantity == 0:
		return StockStatusOut
	case quantity <= reorderLevel:
		return StockStatusLow
	case quantity*nearReorderDen <= reorderLevel*nearReorderNum:
		return StockStatusNearReorder
	default:
		return StockStatusIn
	}
}

// DaysUntilExpiry devuelve ceil((expiry - now) / 1 día). El techo de día
// calendario hace que "vence hoy más tarde" no cuente todavía como vencido.
func DaysUntilExpiry(expiry time.Time, now time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// ExpiryStatus clasifica la fecha de vencimiento contra un `now` único por
// llamada (nunca releer el reloj a mitad de un reporte).
func ExpiryStatus(expiry *time.Time, now time.Time) string {
	if expiry == nil {
		return ExpiryStatusNone
	}
	days := DaysUntilExpiry(*expiry, now)
	switch {
	case days < 0:
		return ExpiryStatusExpired
	case days <= ExpiringSoonDays:
		return ExpiryStatusSoon
	default:
		return ExpiryStatusValid
	}
}
