package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/inventory"
)

// movs construye una lista de movimientos a partir de pares (tipo, cantidad),
// del más reciente al más antiguo como los entrega el listado.
func movs(pairs ...[2]any) []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, &entity.StockMovement{
			Type:     p[0].(string),
			Quantity: int64(p[1].(int)),
		})
	}
	return out
}

// repeat genera n movimientos del mismo tipo y cantidad.
func repeat(typ string, qty, n int) []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &entity.StockMovement{Type: typ, Quantity: int64(qty)})
	}
	return out
}

func TestComputeUsageStats_Totales(t *testing.T) {
	stats := inventory.ComputeUsageStats(movs(
		[2]any{entity.MovementTypeIn, 100},
		[2]any{entity.MovementTypeOut, 30},
		[2]any{entity.MovementTypeOut, 20},
		[2]any{entity.MovementTypeAdjustment, 45}, // los ajustes no suman a in ni out
		[2]any{entity.MovementTypeIn, 10},
	))

	assert.Equal(t, int64(110), stats.TotalIn)
	assert.Equal(t, int64(50), stats.TotalOut)
}

func TestComputeUsageStats_VacioEsEstable(t *testing.T) {
	stats := inventory.ComputeUsageStats(nil)
	assert.Equal(t, int64(0), stats.TotalIn)
	assert.Equal(t, int64(0), stats.TotalOut)
	assert.Equal(t, inventory.TrendStable, stats.Trend)
}

// Tendencia creciente: 10 salidas recientes contra 5 anteriores (ratio 2.0 > 1.2).
func TestComputeUsageStats_TendenciaCreciente(t *testing.T) {
	recent := repeat(entity.MovementTypeOut, 5, 10)
	prior := append(repeat(entity.MovementTypeOut, 5, 5), repeat(entity.MovementTypeIn, 5, 5)...)
	stats := inventory.ComputeUsageStats(append(recent, prior...))
	assert.Equal(t, inventory.TrendIncreasing, stats.Trend)
}

// Tendencia decreciente: 3 salidas recientes contra 8 anteriores (0.375 < 0.8).
func TestComputeUsageStats_TendenciaDecreciente(t *testing.T) {
	recent := append(repeat(entity.MovementTypeOut, 5, 3), repeat(entity.MovementTypeIn, 5, 7)...)
	prior := append(repeat(entity.MovementTypeOut, 5, 8), repeat(entity.MovementTypeIn, 5, 2)...)
	stats := inventory.ComputeUsageStats(append(recent, prior...))
	assert.Equal(t, inventory.TrendDecreasing, stats.Trend)
}

// Ratio dentro de [0.8, 1.2]: estable.
func TestComputeUsageStats_TendenciaEstable(t *testing.T) {
	recent := append(repeat(entity.MovementTypeOut, 5, 5), repeat(entity.MovementTypeIn, 5, 5)...)
	prior := append(repeat(entity.MovementTypeOut, 5, 5), repeat(entity.MovementTypeIn, 5, 5)...)
	stats := inventory.ComputeUsageStats(append(recent, prior...))
	assert.Equal(t, inventory.TrendStable, stats.Trend)
}

// Con menos de dos ventanas completas la comparación sigue siendo válida:
// la ventana anterior se acota a lo disponible.
func TestComputeUsageStats_HistorialCorto(t *testing.T) {
	// 12 movimientos: 10 recientes con 4 salidas, 2 anteriores sin salidas.
	recent := append(repeat(entity.MovementTypeOut, 5, 4), repeat(entity.MovementTypeIn, 5, 6)...)
	prior := repeat(entity.MovementTypeIn, 5, 2)
	stats := inventory.ComputeUsageStats(append(recent, prior...))
	// 4 > 1.2*0: creciente
	assert.Equal(t, inventory.TrendIncreasing, stats.Trend)
}
