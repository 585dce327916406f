package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// CreateSaleUseCase crea una venta y descuenta el inventario en una sola transacción.
type CreateSaleUseCase struct {
	txRunner    TxRunner
	inventoryUC *inventory.ApplyMovementUseCase
	drugRepo    repository.DrugRepository
	patientRepo repository.PatientRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	inventoryUC *inventory.ApplyMovementUseCase,
	drugRepo repository.DrugRepository,
	patientRepo repository.PatientRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		drugRepo:    drugRepo,
		patientRepo: patientRepo,
	}
}

// CreateSale valida paciente, medicamentos y precios; luego, dentro de una
// transacción, registra una salida de stock por cada línea y guarda cabecera y
// detalle. Si cualquier línea no tiene stock suficiente, toda la venta se
// revierte (ErrInsufficientStock al caller, sin venta parcial).
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Paciente opcional: si viene, debe existir
	if in.PatientID != "" {
		patient, err := uc.patientRepo.GetByID(in.PatientID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			return nil, fmt.Errorf("%w: paciente %s", domain.ErrNotFound, in.PatientID)
		}
	}

	// Validar medicamentos y precios (fuera de la tx, solo lectura)
	drugsByID := make(map[string]*entity.Drug)
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
		drugsByID[item.DrugID] = drug
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.IsZero() {
			in.Items[i].UnitPrice = drug.Price
		}
	}

	now := time.Now()
	saleID := uuid.New().String() // referencia de los movimientos de salida
	var sale *entity.Sale
	var saleItems []*entity.SaleItem

	err := uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		drugRepo repository.DrugRepository,
		saleRepo repository.SaleRepository,
	) error {
		number, err := saleRepo.NextNumber()
		if err != nil {
			return err
		}

		// 1) Por cada línea, registrar la salida vía el libro de movimientos.
		// Un error (ej. sin stock) retorna y hace rollback de toda la venta.
		subtotal := decimal.Zero
		saleItems = make([]*entity.SaleItem, 0, len(in.Items))
		for _, item := range in.Items {
			drug := drugsByID[item.DrugID]
			if _, err := uc.inventoryUC.ApplyInTx(movRepo, drugRepo, inventory.MovementInput{
				DrugID:    item.DrugID,
				Type:      entity.MovementTypeOut,
				Quantity:  item.Quantity,
				Reason:    "venta " + number,
				Reference: saleID,
				UserID:    userID,
			}, now); err != nil {
				return err
			}

			lineSubtotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
			subtotal = subtotal.Add(lineSubtotal)
			saleItems = append(saleItems, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				DrugID:    item.DrugID,
				DrugName:  drug.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  lineSubtotal,
			})
		}

		total := subtotal.Sub(in.Discount)
		if total.LessThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}

		// 2) Guardar cabecera y detalle
		sale = &entity.Sale{
			ID:        saleID,
			Number:    number,
			PatientID: in.PatientID,
			Subtotal:  subtotal,
			Discount:  in.Discount,
			Total:     total,
			Status:    entity.SaleStatusCompleted,
			CreatedAt: now,
			CreatedBy: userID,
		}
		return saleRepo.Create(sale, saleItems)
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, saleItems), nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:        sale.ID,
		Number:    sale.Number,
		PatientID: sale.PatientID,
		Subtotal:  sale.Subtotal,
		Discount:  sale.Discount,
		Total:     sale.Total,
		Status:    sale.Status,
		Items:     make([]dto.SaleItemResponse, 0, len(items)),
		CreatedAt: sale.CreatedAt,
		CreatedBy: sale.CreatedBy,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			DrugID:    it.DrugID,
			DrugName:  it.DrugName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
