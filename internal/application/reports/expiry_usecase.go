package reports

import (
	"context"
	"sort"
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// ExpiryUseCase genera el reporte de medicamentos vencidos y por vencer.
type ExpiryUseCase struct {
	drugRepo repository.DrugRepository
}

// NewExpiryUseCase construye el caso de uso.
func NewExpiryUseCase(drugRepo repository.DrugRepository) *ExpiryUseCase {
	return &ExpiryUseCase{drugRepo: drugRepo}
}

// GenerateExpiryReport clasifica cada medicamento activo contra un único `now`,
// de modo que ningún estado pueda "voltearse" a mitad del reporte.
func (uc *ExpiryUseCase) GenerateExpiryReport(ctx context.Context, now time.Time) (*dto.ExpiryReportResponse, error) {
	drugs, err := uc.drugRepo.ListActive()
	if err != nil {
		return nil, err
	}

	report := &dto.ExpiryReportResponse{
		GeneratedAt:  now,
		Expired:      make([]dto.ExpiryItemDTO, 0),
		ExpiringSoon: make([]dto.ExpiryItemDTO, 0),
	}
	for _, drug := range drugs {
		status := inventory.ExpiryStatus(drug.ExpiryDate, now)
		switch status {
		case inventory.ExpiryStatusExpired:
			report.Expired = append(report.Expired, toExpiryItem(drug, status, now))
		case inventory.ExpiryStatusSoon:
			report.ExpiringSoon = append(report.ExpiringSoon, toExpiryItem(drug, status, now))
		}
	}

	// Los más urgentes primero
	sort.Slice(report.ExpiringSoon, func(i, j int) bool {
		return report.ExpiringSoon[i].DaysUntilExpiry < report.ExpiringSoon[j].DaysUntilExpiry
	})
	sort.Slice(report.Expired, func(i, j int) bool {
		return report.Expired[i].DaysUntilExpiry < report.Expired[j].DaysUntilExpiry
	})

	return report, nil
}

func toExpiryItem(drug *entity.Drug, status string, now time.Time) dto.ExpiryItemDTO {
	item := dto.ExpiryItemDTO{
		DrugID:       drug.ID,
		SKU:          drug.SKU,
		Name:         drug.Name,
		Quantity:     drug.Quantity,
		ExpiryDate:   drug.ExpiryDate,
		ExpiryStatus: status,
	}
	if drug.ExpiryDate != nil {
		item.DaysUntilExpiry = inventory.DaysUntilExpiry(*drug.ExpiryDate, now)
	}
	return item
}
