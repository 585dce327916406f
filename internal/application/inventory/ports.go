package inventory

import (
	"context"

	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza la atomicidad del libro de movimientos: el insert del movimiento y
// el update del saldo del medicamento ocurren ambos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		drugRepo repository.DrugRepository,
	) error) error
}
