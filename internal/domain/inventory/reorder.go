package inventory

import "math"

// Constantes de la heurística de reposición. Valores fijos heredados de la
// operación de la farmacia, sin pretensión de teoría de inventarios.
const (
	LeadTimeDays      = 7   // días de entrega del proveedor
	safetyStockFactor = 0.2 // 20% del punto de reorden como colchón
	MinimumOrderQty   = 50  // pedido mínimo
)

// SuggestedReorderQty calcula la cantidad sugerida de pedido para un
// medicamento bajo punto de reorden. averageUsage es el consumo mensual
// promedio (unidades/30 días).
//
//	sugerido = max(reorderLevel*2, leadTimeStock + safetyStock, 50)
//	safetyStock   = ceil(reorderLevel * 0.2)
//	leadTimeStock = ceil(averageUsage/30 * leadTimeDays)
func SuggestedReorderQty(reorderLevel int64, averageUsage float64) int64 {
	safetyStock := int64(math.Ceil(float64(reorderLevel) * safetyStockFactor))
	leadTimeStock := int64(math.Ceil(averageUsage / 30 * LeadTimeDays))

	suggested := reorderLevel * 2
	if leadTimeStock+safetyStock > suggested {
		suggested = leadTimeStock + safetyStock
	}
	if suggested < MinimumOrderQty {
		suggested = MinimumOrderQty
	}
	return suggested
}
