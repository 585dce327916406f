package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste por conteo físico
)

// ValidMovementType indica si el tipo pertenece al catálogo.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut || t == MovementTypeAdjustment
}

// StockMovement representa un movimiento de inventario. Los movimientos son
// inmutables: nunca se actualizan ni se borran; la disposición de stock vencido
// se modela como una salida con motivo "disposal", no como borrado del libro.
//
// Quantity guarda la entrada cruda del operador: magnitud para in/out y el
// nuevo total absoluto para adjustment (conteo físico). BalanceAfter es la foto
// del saldo del medicamento inmediatamente después de aplicar el movimiento,
// de modo que el encadenado BalanceAfter(n-1) -> BalanceAfter(n) es auditable.
type StockMovement struct {
	ID           string
	DrugID       string
	Type         string // in, out, adjustment
	Quantity     int64
	Reason       string // motivo; vocabulario sugerido por tipo, texto libre
	Reference    string // documento externo: compra, venta, nota
	Notes        string
	BalanceAfter int64
	CreatedAt    time.Time
	CreatedBy    string // UserID
}

// Delta devuelve el cambio neto que implicó el movimiento dado el saldo previo.
func (m *StockMovement) Delta(previousBalance int64) int64 {
	switch m.Type {
	case MovementTypeIn:
		return m.Quantity
	case MovementTypeOut:
		return -m.Quantity
	case MovementTypeAdjustment:
		return m.Quantity - previousBalance
	}
	return 0
}
