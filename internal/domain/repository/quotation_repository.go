package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// QuotationRepository define el puerto de persistencia para cotizaciones.
type QuotationRepository interface {
	Create(quotation *entity.Quotation, items []*entity.QuotationItem) error
	GetByID(id string) (*entity.Quotation, []*entity.QuotationItem, error)
	// UpdateStatus marca la cotización (converted/expired) y enlaza la venta generada.
	UpdateStatus(id, status, saleID string) error
	List(limit, offset int) ([]*entity.Quotation, error)
	NextNumber() (string, error)
}
