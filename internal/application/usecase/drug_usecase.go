package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	appinventory "github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pos/pkg/search"
)

// DrugUseCase casos de uso CRUD para medicamentos. Quantity se maneja
// exclusivamente vía movimientos: Create arranca en cero y el conteo inicial
// entra como movimiento "in"; Update nunca toca el saldo.
type DrugUseCase struct {
	repo       repository.DrugRepository
	movementUC *appinventory.ApplyMovementUseCase
}

// NewDrugUseCase construye el caso de uso.
func NewDrugUseCase(repo repository.DrugRepository, movementUC *appinventory.ApplyMovementUseCase) *DrugUseCase {
	return &DrugUseCase{repo: repo, movementUC: movementUC}
}

// Create crea un medicamento con saldo cero; si InitialQuantity > 0 registra
// el conteo inicial como movimiento de entrada (queda en la auditoría).
func (uc *DrugUseCase) Create(ctx context.Context, userID string, in dto.CreateDrugRequest) (*dto.DrugResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ReorderLevel < 0 || in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	drug := &entity.Drug{
		ID:           uuid.New().String(),
		SKU:          in.SKU,
		Name:         in.Name,
		GenericName:  in.GenericName,
		Description:  in.Description,
		Category:     in.Category,
		Unit:         in.Unit,
		Price:        in.Price,
		Cost:         in.Cost,
		Quantity:     0,
		ReorderLevel: in.ReorderLevel,
		ExpiryDate:   in.ExpiryDate,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(drug); err != nil {
		return nil, err
	}

	if in.InitialQuantity > 0 {
		result, err := uc.movementUC.ApplyMovement(ctx, appinventory.MovementInput{
			DrugID:   drug.ID,
			Type:     entity.MovementTypeIn,
			Quantity: in.InitialQuantity,
			Reason:   "stock inicial",
			UserID:   userID,
		})
		if err != nil {
			return nil, err
		}
		drug.Quantity = result.NewBalance
	}
	return toDrugResponse(drug, now), nil
}

// GetByID obtiene un medicamento con sus estados derivados.
func (uc *DrugUseCase) GetByID(ctx context.Context, id string) (*dto.DrugResponse, error) {
	drug, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if drug == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return toDrugResponse(drug, time.Now()), nil
}

// Update actualiza atributos. No permite modificar Quantity (se maneja vía movimientos).
func (uc *DrugUseCase) Update(ctx context.Context, id string, in dto.UpdateDrugRequest) (*dto.DrugResponse, error) {
	drug, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if drug == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		drug.Name = *in.Name
	}
	if in.GenericName != nil {
		drug.GenericName = *in.GenericName
	}
	if in.Description != nil {
		drug.Description = *in.Description
	}
	if in.Category != nil {
		drug.Category = *in.Category
	}
	if in.Unit != nil {
		drug.Unit = *in.Unit
	}
	if in.Price != nil {
		drug.Price = *in.Price
	}
	if in.Cost != nil {
		drug.Cost = *in.Cost
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		drug.ReorderLevel = *in.ReorderLevel
	}
	if in.ExpiryDate != nil {
		drug.ExpiryDate = in.ExpiryDate
	}
	drug.UpdatedAt = time.Now()
	if err := uc.repo.Update(drug); err != nil {
		return nil, err
	}
	return toDrugResponse(drug, drug.UpdatedAt), nil
}

// List lista medicamentos con paginación y filtro de texto opcional
// (insensible a tildes, contra nombre, genérico y SKU).
func (uc *DrugUseCase) List(ctx context.Context, query string, page dto.PageRequest) (*dto.DrugListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.DrugResponse, 0, len(list))
	for _, d := range list {
		if query != "" && !matchesDrug(d, query) {
			continue
		}
		items = append(items, *toDrugResponse(d, now))
	}
	return &dto.DrugListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete marca el medicamento como inactivo (borrado lógico: el historial de
// movimientos se conserva).
func (uc *DrugUseCase) Delete(ctx context.Context, id string) error {
	drug, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if drug == nil {
		return fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, id)
	}
	return uc.repo.Deactivate(id)
}

func matchesDrug(d *entity.Drug, query string) bool {
	return search.Contains(d.Name, query) ||
		search.Contains(d.GenericName, query) ||
		search.Contains(d.SKU, query)
}

// toDrugResponse deriva los estados con un `now` único por llamada.
func toDrugResponse(d *entity.Drug, now time.Time) *dto.DrugResponse {
	return &dto.DrugResponse{
		ID:           d.ID,
		SKU:          d.SKU,
		Name:         d.Name,
		GenericName:  d.GenericName,
		Description:  d.Description,
		Category:     d.Category,
		Unit:         d.Unit,
		Price:        d.Price,
		Cost:         d.Cost,
		Quantity:     d.Quantity,
		ReorderLevel: d.ReorderLevel,
		ExpiryDate:   d.ExpiryDate,
		StockStatus:  inventory.StockStatus(d.Quantity, d.ReorderLevel),
		ExpiryStatus: inventory.ExpiryStatus(d.ExpiryDate, now),
		Active:       d.Active,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}
