package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// DashboardUseCase agrega los contadores del tablero principal.
type DashboardUseCase struct {
	drugRepo repository.DrugRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(drugRepo repository.DrugRepository) *DashboardUseCase {
	return &DashboardUseCase{drugRepo: drugRepo}
}

// GenerateDashboard cuenta medicamentos por estado de stock y vencimiento y
// valora el inventario a costo (Σ quantity * cost).
func (uc *DashboardUseCase) GenerateDashboard(ctx context.Context, now time.Time) (*dto.DashboardResponse, error) {
	drugs, err := uc.drugRepo.ListActive()
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		GeneratedAt:    now,
		TotalDrugs:     len(drugs),
		InventoryValue: decimal.Zero,
	}
	for _, drug := range drugs {
		switch inventory.StockStatus(drug.Quantity, drug.ReorderLevel) {
		case inventory.StockStatusOut:
			resp.OutOfStock++
		case inventory.StockStatusLow:
			resp.LowStock++
		case inventory.StockStatusNearReorder:
			resp.NearReorder++
		}
		switch inventory.ExpiryStatus(drug.ExpiryDate, now) {
		case inventory.ExpiryStatusExpired:
			resp.Expired++
		case inventory.ExpiryStatusSoon:
			resp.ExpiringSoon++
		}
		resp.InventoryValue = resp.InventoryValue.Add(
			drug.Cost.Mul(decimal.NewFromInt(drug.Quantity)))
	}
	return resp, nil
}
