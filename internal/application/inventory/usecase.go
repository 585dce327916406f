package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// ApplyMovementUseCase registra movimientos de stock de forma transaccional
// (in, out, adjustment) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Es el único camino de escritura del saldo de un medicamento.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	drugRepo repository.DrugRepository
}

// NewApplyMovementUseCase construye el caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, drugRepo repository.DrugRepository) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, drugRepo: drugRepo}
}

// MovementInput entrada para registrar un movimiento.
// Quantity es la magnitud para in/out y el nuevo total absoluto para adjustment
// (semántica "confiar en el conteo físico", distinta del delta de in/out).
type MovementInput struct {
	DrugID    string
	Type      string
	Quantity  int64
	Reason    string
	Reference string
	Notes     string
	UserID    string
}

// MovementResult movimiento creado y saldo resultante.
type MovementResult struct {
	Movement   *entity.StockMovement
	NewBalance int64
}

// ApplyMovement valida la entrada, inicia una transacción, bloquea la fila del
// medicamento y aplica el movimiento. Una salida mayor al saldo se rechaza con
// ErrInsufficientStock sin persistir nada: nunca se recorta en silencio, para
// no distorsionar la pista de auditoría.
func (uc *ApplyMovementUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Existencia del medicamento fuera de la tx (solo lectura)
	drug, err := uc.drugRepo.GetByID(input.DrugID)
	if err != nil {
		return nil, err
	}
	if drug == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, input.DrugID)
	}

	now := time.Now()
	var result *MovementResult

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		drugRepo repository.DrugRepository,
	) error {
		mov, err := uc.ApplyInTx(movRepo, drugRepo, input, now)
		if err != nil {
			return err
		}
		result = &MovementResult{Movement: mov, NewBalance: mov.BalanceAfter}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApplyInTx aplica un movimiento usando los repositorios proporcionados (misma
// transacción del caller). Ventas y compras lo reutilizan para que sus líneas y
// el libro de movimientos compartan atomicidad.
func (uc *ApplyMovementUseCase) ApplyInTx(
	movRepo repository.StockMovementRepository,
	drugRepo repository.DrugRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	// Bloquea la fila del medicamento (SELECT FOR UPDATE): dos movimientos
	// concurrentes sobre el mismo medicamento se serializan aquí.
	drug, err := drugRepo.GetForUpdate(input.DrugID)
	if err != nil {
		return nil, err
	}
	if drug == nil {
		return nil, fmt.Errorf("%w: medicamento %s", domain.ErrNotFound, input.DrugID)
	}

	var newBalance int64
	switch input.Type {
	case entity.MovementTypeIn:
		newBalance = drug.Quantity + input.Quantity
	case entity.MovementTypeOut:
		if input.Quantity > drug.Quantity {
			return nil, fmt.Errorf("%w: medicamento %s, solicitado %d, disponible %d",
				domain.ErrInsufficientStock, drug.ID, input.Quantity, drug.Quantity)
		}
		newBalance = drug.Quantity - input.Quantity
	case entity.MovementTypeAdjustment:
		// Sobrescritura absoluta: el operador reporta el conteo, no un delta.
		newBalance = input.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := drugRepo.UpdateQuantity(drug.ID, newBalance); err != nil {
		return nil, err
	}

	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		DrugID:       drug.ID,
		Type:         input.Type,
		Quantity:     input.Quantity,
		Reason:       input.Reason,
		Reference:    input.Reference,
		Notes:        input.Notes,
		BalanceAfter: newBalance,
		CreatedAt:    now,
		CreatedBy:    input.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func validateInput(input MovementInput) error {
	if input.DrugID == "" || input.Reason == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return fmt.Errorf("%w: quantity debe ser un entero positivo", domain.ErrInvalidInput)
	}
	return nil
}
