package repository

import (
	"time"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
// Los movimientos son inmutables: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByDrugSince lista movimientos de un medicamento desde una fecha,
	// del más reciente al más antiguo. from en cero = todo el historial.
	ListByDrugSince(drugID string, from time.Time) ([]*entity.StockMovement, error)
}
