package inventory

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// Tendencias de consumo.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// trendWindow tamaño de la ventana de comparación (registros, no tiempo).
const trendWindow = 10

// UsageStats agrega entradas, salidas y tendencia sobre una lista de movimientos.
type UsageStats struct {
	TotalIn  int64
	TotalOut int64
	Trend    string
}

// ComputeUsageStats calcula totales y tendencia sobre movimientos ordenados del
// más reciente al más antiguo (el orden que entrega ListMovements).
//
// La tendencia compara el número de salidas en los 10 registros más recientes
// contra los 10 anteriores: >1.2x creciente, <0.8x decreciente, si no estable.
// Es una heurística gruesa sobre una ventana por registros, no un modelo de
// series de tiempo.
func ComputeUsageStats(movements []*entity.StockMovement) UsageStats {
	stats := UsageStats{Trend: TrendStable}
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIn:
			stats.TotalIn += m.Quantity
		case entity.MovementTypeOut:
			q := m.Quantity
			if q < 0 {
				q = -q
			}
			stats.TotalOut += q
		}
	}

	recent := countOuts(movements, 0, trendWindow)
	prior := countOuts(movements, trendWindow, 2*trendWindow)
	switch {
	case float64(recent) > 1.2*float64(prior):
		stats.Trend = TrendIncreasing
	case float64(recent) < 0.8*float64(prior):
		stats.Trend = TrendDecreasing
	}
	return stats
}

// countOuts cuenta movimientos de salida en movements[from:to) acotando al largo.
func countOuts(movements []*entity.StockMovement, from, to int) int {
	if from >= len(movements) {
		return 0
	}
	if to > len(movements) {
		to = len(movements)
	}
	n := 0
	for _, m := range movements[from:to] {
		if m.Type == entity.MovementTypeOut {
			n++
		}
	}
	return n
}
