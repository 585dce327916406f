package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// SaleQueryUseCase lecturas de ventas y generación del recibo imprimible.
type SaleQueryUseCase struct {
	saleRepo    repository.SaleRepository
	patientRepo repository.PatientRepository
	receiptGen  ReceiptGenerator
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(
	saleRepo repository.SaleRepository,
	patientRepo repository.PatientRepository,
	receiptGen ReceiptGenerator,
) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo, patientRepo: patientRepo, receiptGen: receiptGen}
}

// GetByID obtiene una venta con sus líneas.
func (uc *SaleQueryUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, items, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	return toSaleResponse(sale, items), nil
}

// List lista ventas paginadas (sin líneas).
func (uc *SaleQueryUseCase) List(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Receipt genera el PDF del recibo de una venta.
func (uc *SaleQueryUseCase) Receipt(ctx context.Context, id string) ([]byte, error) {
	sale, items, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, id)
	}
	var patient *entity.Patient
	if sale.PatientID != "" {
		patient, err = uc.patientRepo.GetByID(sale.PatientID)
		if err != nil {
			return nil, err
		}
	}
	return uc.receiptGen.GenerateReceiptPDF(ctx, sale, items, patient)
}
