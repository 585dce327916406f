package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// DrugRepository define el puerto de persistencia para Drug (DIP).
// Quantity solo se escribe vía UpdateQuantity dentro de la transacción del
// libro de movimientos; Update no toca el saldo.
type DrugRepository interface {
	Create(drug *entity.Drug) error
	GetByID(id string) (*entity.Drug, error)
	GetBySKU(sku string) (*entity.Drug, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Usar solo dentro de una tx.
	GetForUpdate(id string) (*entity.Drug, error)
	Update(drug *entity.Drug) error
	UpdateQuantity(id string, quantity int64) error
	List(limit, offset int) ([]*entity.Drug, error)
	ListActive() ([]*entity.Drug, error)
	Deactivate(id string) error
}
