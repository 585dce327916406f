package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// defaultQuotationValidDays vigencia por defecto de una cotización.
const defaultQuotationValidDays = 15

// QuotationUseCase maneja cotizaciones: no afectan el inventario hasta convertirse en venta.
type QuotationUseCase struct {
	quotationRepo repository.QuotationRepository
	drugRepo      repository.DrugRepository
	createSaleUC  *CreateSaleUseCase
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(
	quotationRepo repository.QuotationRepository,
	drugRepo repository.DrugRepository,
	createSaleUC *CreateSaleUseCase,
) *QuotationUseCase {
	return &QuotationUseCase{
		quotationRepo: quotationRepo,
		drugRepo:      drugRepo,
		createSaleUC:  createSaleUC,
	}
}

// Create crea una cotización con precios actuales, sin tocar stock.
func (uc *QuotationUseCase) Create(ctx context.Context, userID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	validDays := in.ValidDays
	if validDays <= 0 {
		validDays = defaultQuotationValidDays
	}

	now := time.Now()
	quotationID := uuid.New().String()
	total := decimal.Zero
	items := make([]*entity.QuotationItem, 0, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.DrugID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		drug, err := uc.drugRepo.GetByID(item.DrugID)
		if err != nil {
			return nil, err
		}
		if drug == nil || !drug.Active {
			return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, item.DrugID)
		}
		unitPrice := item.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = drug.Price
		}
		subtotal := unitPrice.Mul(decimal.NewFromInt(item.Quantity))
		total = total.Add(subtotal)
		items = append(items, &entity.QuotationItem{
			ID:          uuid.New().String(),
			QuotationID: quotationID,
			DrugID:      item.DrugID,
			Quantity:    item.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
	}

	number, err := uc.quotationRepo.NextNumber()
	if err != nil {
		return nil, err
	}
	quotation := &entity.Quotation{
		ID:        quotationID,
		Number:    number,
		PatientID: in.PatientID,
		Total:     total,
		Status:    entity.QuotationStatusOpen,
		ValidTo:   now.AddDate(0, 0, validDays),
		CreatedAt: now,
		CreatedBy: userID,
	}
	if err := uc.quotationRepo.Create(quotation, items); err != nil {
		return nil, err
	}
	return toQuotationResponse(quotation, items), nil
}

// GetByID obtiene una cotización con sus líneas.
func (uc *QuotationUseCase) GetByID(ctx context.Context, id string) (*dto.QuotationResponse, error) {
	quotation, items, err := uc.quotationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, fmt.Errorf("%w: cotización %s", domain.ErrNotFound, id)
	}
	return toQuotationResponse(quotation, items), nil
}

// Convert convierte una cotización abierta en venta; la venta descuenta stock
// vía el libro de movimientos. Una cotización vencida o ya convertida retorna
// ErrConflict.
func (uc *QuotationUseCase) Convert(ctx context.Context, userID, id string) (*dto.SaleResponse, error) {
	quotation, items, err := uc.quotationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, fmt.Errorf("%w: cotización %s", domain.ErrNotFound, id)
	}
	if quotation.Status != entity.QuotationStatusOpen {
		return nil, fmt.Errorf("%w: cotización %s en estado %s", domain.ErrConflict, id, quotation.Status)
	}
	if time.Now().After(quotation.ValidTo) {
		_ = uc.quotationRepo.UpdateStatus(id, entity.QuotationStatusExpired, "")
		return nil, fmt.Errorf("%w: cotización %s vencida", domain.ErrConflict, id)
	}

	saleItems := make([]dto.SaleItemRequest, 0, len(items))
	for _, it := range items {
		saleItems = append(saleItems, dto.SaleItemRequest{
			DrugID:    it.DrugID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice, // respeta el precio cotizado
		})
	}
	sale, err := uc.createSaleUC.CreateSale(ctx, userID, dto.CreateSaleRequest{
		PatientID: quotation.PatientID,
		Items:     saleItems,
	})
	if err != nil {
		return nil, err
	}
	if err := uc.quotationRepo.UpdateStatus(id, entity.QuotationStatusConverted, sale.ID); err != nil {
		return nil, err
	}
	return sale, nil
}

func toQuotationResponse(q *entity.Quotation, items []*entity.QuotationItem) *dto.QuotationResponse {
	resp := &dto.QuotationResponse{
		ID:        q.ID,
		Number:    q.Number,
		PatientID: q.PatientID,
		Total:     q.Total,
		Status:    q.Status,
		SaleID:    q.SaleID,
		ValidTo:   q.ValidTo,
		Items:     make([]dto.QuotationItemResponse, 0, len(items)),
		CreatedAt: q.CreatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.QuotationItemResponse{
			DrugID:    it.DrugID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
