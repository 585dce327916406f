package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// LowStockUseCase genera el reporte de medicamentos en o bajo el punto de
// reorden, con cantidad sugerida de pedido y tendencia de consumo.
type LowStockUseCase struct {
	drugRepo repository.DrugRepository
	movRepo  repository.StockMovementRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(drugRepo repository.DrugRepository, movRepo repository.StockMovementRepository) *LowStockUseCase {
	return &LowStockUseCase{drugRepo: drugRepo, movRepo: movRepo}
}

// GenerateLowStockReport clasifica cada medicamento activo con un único `now`
// (un solo instante por reporte, sin releer el reloj entre filas) e incluye
// los que no estén en in_stock. El consumo promedio mensual sale de las
// salidas de los últimos 90 días.
func (uc *LowStockUseCase) GenerateLowStockReport(ctx context.Context, now time.Time) (*dto.LowStockReportResponse, error) {
	drugs, err := uc.drugRepo.ListActive()
	if err != nil {
		return nil, err
	}

	since := now.AddDate(0, 0, -90)
	items := make([]dto.LowStockItemDTO, 0)
	for _, drug := range drugs {
		status := inventory.StockStatus(drug.Quantity, drug.ReorderLevel)
		if status == inventory.StockStatusIn {
			continue
		}

		movements, err := uc.movRepo.ListByDrugSince(drug.ID, since)
		if err != nil {
			return nil, err
		}
		stats := inventory.ComputeUsageStats(movements)
		averageUsage := float64(stats.TotalOut) / 3 // 90 días -> unidades/mes

		items = append(items, dto.LowStockItemDTO{
			DrugID:         drug.ID,
			SKU:            drug.SKU,
			Name:           drug.Name,
			Quantity:       drug.Quantity,
			ReorderLevel:   drug.ReorderLevel,
			StockStatus:    status,
			SuggestedOrder: inventory.SuggestedReorderQty(drug.ReorderLevel, averageUsage),
			UsageTrend:     stats.Trend,
			OutLast90Days:  stats.TotalOut,
		})
	}

	return &dto.LowStockReportResponse{
		GeneratedAt: now,
		Total:       len(items),
		Items:       items,
	}, nil
}
