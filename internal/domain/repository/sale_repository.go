package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale, items []*entity.SaleItem) error
	GetByID(id string) (*entity.Sale, []*entity.SaleItem, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// NextNumber devuelve el siguiente consecutivo de venta (V-000001, ...).
	NextNumber() (string, error)
}
