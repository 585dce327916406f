package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	domaininv "github.com/tu-usuario/farmacia-pos/internal/domain/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pos/pkg/search"
)

// ListMovementsUseCase lista el historial de movimientos de un medicamento con
// filtros de tipo, rango de fecha y texto. Lectura pura: sin efectos ni locks.
type ListMovementsUseCase struct {
	drugRepo repository.DrugRepository
	movRepo  repository.StockMovementRepository
}

// NewListMovementsUseCase construye el caso de uso.
func NewListMovementsUseCase(drugRepo repository.DrugRepository, movRepo repository.StockMovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{drugRepo: drugRepo, movRepo: movRepo}
}

// ListMovements devuelve movimientos del más reciente al más antiguo.
// `now` se captura una sola vez por llamada y resuelve el rango de fechas
// relativo; el texto se compara sin mayúsculas ni tildes contra motivo,
// referencia y usuario creador.
func (uc *ListMovementsUseCase) ListMovements(ctx context.Context, drugID string, in dto.ListMovementsRequest, now time.Time) (*dto.MovementListResponse, error) {
	drug, err := uc.drugRepo.GetByID(drugID)
	if err != nil {
		return nil, err
	}
	if drug == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, drugID)
	}
	if in.Type != "" && !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}

	from, err := resolveDateRange(in.DateRange, now)
	if err != nil {
		return nil, err
	}

	movements, err := uc.movRepo.ListByDrugSince(drugID, from)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.StockMovement, 0, len(movements))
	for _, m := range movements {
		if in.Type != "" && m.Type != in.Type {
			continue
		}
		if in.SearchText != "" && !matchesSearch(m, in.SearchText) {
			continue
		}
		filtered = append(filtered, m)
	}

	stats := domaininv.ComputeUsageStats(filtered)

	in.DefaultPage()
	page := paginate(filtered, in.Limit, in.Offset)
	items := make([]dto.MovementResponse, 0, len(page))
	for _, m := range page {
		items = append(items, toMovementResponse(m))
	}

	return &dto.MovementListResponse{
		Items:    items,
		TotalIn:  stats.TotalIn,
		TotalOut: stats.TotalOut,
		Trend:    stats.Trend,
		Page:     dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(filtered)},
	}, nil
}

// resolveDateRange traduce el rango enumerado a un límite inferior relativo a now.
// Cero = sin límite (all). El rango nunca se almacena: siempre se resuelve al consultar.
func resolveDateRange(dateRange string, now time.Time) (time.Time, error) {
	switch dateRange {
	case "", dto.DateRangeAll:
		return time.Time{}, nil
	case dto.DateRange7Days:
		return now.AddDate(0, 0, -7), nil
	case dto.DateRange30Days:
		return now.AddDate(0, 0, -30), nil
	case dto.DateRange90Days:
		return now.AddDate(0, 0, -90), nil
	}
	return time.Time{}, fmt.Errorf("%w: date_range %q", domain.ErrInvalidInput, dateRange)
}

func matchesSearch(m *entity.StockMovement, text string) bool {
	return search.Contains(m.Reason, text) ||
		search.Contains(m.Reference, text) ||
		search.Contains(m.CreatedBy, text)
}

func paginate(movements []*entity.StockMovement, limit, offset int) []*entity.StockMovement {
	if offset >= len(movements) {
		return nil
	}
	end := offset + limit
	if end > len(movements) {
		end = len(movements)
	}
	return movements[offset:end]
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:           m.ID,
		DrugID:       m.DrugID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		Reference:    m.Reference,
		Notes:        m.Notes,
		BalanceAfter: m.BalanceAfter,
		CreatedAt:    m.CreatedAt,
		CreatedBy:    m.CreatedBy,
	}
}
