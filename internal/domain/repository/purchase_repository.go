package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase, items []*entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, []*entity.PurchaseItem, error)
	List(limit, offset int) ([]*entity.Purchase, error)
	NextNumber() (string, error)
}
