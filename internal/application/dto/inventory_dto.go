package dto

import "time"

// Rangos de fecha enumerados para el listado de movimientos.
// Siempre relativos al momento de la consulta, nunca almacenados.
const (
	DateRange7Days  = "7days"
	DateRange30Days = "30days"
	DateRange90Days = "90days"
	DateRangeAll    = "all"
)

// ApplyMovementRequest body para POST /api/inventory/movements.
// Quantity es la magnitud para in/out y el nuevo total absoluto para adjustment.
type ApplyMovementRequest struct {
	DrugID    string `json:"drug_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=in out adjustment"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Reason    string `json:"reason" validate:"required"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           string    `json:"id"`
	DrugID       string    `json:"drug_id"`
	Type         string    `json:"type"`
	Quantity     int64     `json:"quantity"`
	Reason       string    `json:"reason"`
	Reference    string    `json:"reference,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	BalanceAfter int64     `json:"balance_after"`
	CreatedAt    time.Time `json:"created_at"`
	CreatedBy    string    `json:"created_by"`
}

// ApplyMovementResponse resultado de registrar un movimiento.
type ApplyMovementResponse struct {
	Movement   MovementResponse `json:"movement"`
	NewBalance int64            `json:"new_balance"`
}

// ListMovementsRequest filtros para GET /api/drugs/:id/movements.
type ListMovementsRequest struct {
	Type       string `query:"type"`
	DateRange  string `query:"date_range"` // 7days, 30days, 90days, all
	SearchText string `query:"search"`
	PageRequest
}

// MovementListResponse lista de movimientos con estadísticas de uso.
type MovementListResponse struct {
	Items    []MovementResponse `json:"items"`
	TotalIn  int64              `json:"total_in"`
	TotalOut int64              `json:"total_out"`
	Trend    string             `json:"trend"`
	Page     PageResponse       `json:"page"`
}
