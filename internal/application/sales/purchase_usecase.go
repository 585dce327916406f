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

// CreatePurchaseUseCase crea una compra a proveedor e ingresa el stock en una sola transacción.
type CreatePurchaseUseCase struct {
	txRunner     TxRunner
	inventoryUC  *inventory.ApplyMovementUseCase
	drugRepo     repository.DrugRepository
	purchaseRepo repository.PurchaseRepository
}

// NewCreatePurchaseUseCase construye el caso de uso.
func NewCreatePurchaseUseCase(
	txRunner TxRunner,
	inventoryUC *inventory.ApplyMovementUseCase,
	drugRepo repository.DrugRepository,
	purchaseRepo repository.PurchaseRepository,
) *CreatePurchaseUseCase {
	return &CreatePurchaseUseCase{
		txRunner:     txRunner,
		inventoryUC:  inventoryUC,
		drugRepo:     drugRepo,
		purchaseRepo: purchaseRepo,
	}
}

// CreatePurchase registra una entrada de stock por cada línea y guarda la
// compra, todo en una transacción. La referencia del proveedor queda como
// referencia del movimiento para trazabilidad.
func (uc *CreatePurchaseUseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.Supplier == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	drugsByID := make(map[string]*entity.Drug)
	for i := range in.Items {
		item := &in.Items[i]
		if item.DrugID == "" || item.Quantity <= 0 || item.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		drug, err := uc.drugRepo.GetByID(item.DrugID)
		if err != nil {
			return nil, err
		}
		if drug == nil {
			return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, item.DrugID)
		}
		drugsByID[item.DrugID] = drug
		if item.UnitCost.IsZero() {
			in.Items[i].UnitCost = drug.Cost
		}
	}

	now := time.Now()
	purchaseID := uuid.New().String()
	reference := in.Reference
	if reference == "" {
		reference = purchaseID
	}
	var purchase *entity.Purchase
	var purchaseItems []*entity.PurchaseItem

	err := uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.StockMovementRepository,
		drugRepo repository.DrugRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		number, err := purchaseRepo.NextNumber()
		if err != nil {
			return err
		}

		total := decimal.Zero
		purchaseItems = make([]*entity.PurchaseItem, 0, len(in.Items))
		for _, item := range in.Items {
			if _, err := uc.inventoryUC.ApplyInTx(movRepo, drugRepo, inventory.MovementInput{
				DrugID:    item.DrugID,
				Type:      entity.MovementTypeIn,
				Quantity:  item.Quantity,
				Reason:    "compra " + in.Supplier,
				Reference: reference,
				UserID:    userID,
			}, now); err != nil {
				return err
			}

			subtotal := item.UnitCost.Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(subtotal)
			purchaseItems = append(purchaseItems, &entity.PurchaseItem{
				ID:         uuid.New().String(),
				PurchaseID: purchaseID,
				DrugID:     item.DrugID,
				Quantity:   item.Quantity,
				UnitCost:   item.UnitCost,
				Subtotal:   subtotal,
			})
		}

		purchase = &entity.Purchase{
			ID:        purchaseID,
			Number:    number,
			Supplier:  in.Supplier,
			Reference: in.Reference,
			Total:     total,
			CreatedAt: now,
			CreatedBy: userID,
		}
		return purchaseRepo.Create(purchase, purchaseItems)
	})
	if err != nil {
		return nil, err
	}

	return toPurchaseResponse(purchase, purchaseItems), nil
}

// GetPurchase obtiene una compra con sus líneas.
func (uc *CreatePurchaseUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, items, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: compra %s", domain.ErrNotFound, id)
	}
	return toPurchaseResponse(purchase, items), nil
}

func toPurchaseResponse(p *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:        p.ID,
		Number:    p.Number,
		Supplier:  p.Supplier,
		Reference: p.Reference,
		Total:     p.Total,
		Items:     make([]dto.PurchaseItemResponse, 0, len(items)),
		CreatedAt: p.CreatedAt,
		CreatedBy: p.CreatedBy,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			DrugID:   it.DrugID,
			Quantity: it.Quantity,
			UnitCost: it.UnitCost,
			Subtotal: it.Subtotal,
		})
	}
	return resp
}
