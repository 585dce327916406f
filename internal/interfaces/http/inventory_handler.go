package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/inventory"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
)

// InventoryHandler maneja el libro de movimientos de stock (protegido).
type InventoryHandler struct {
	applyUC *inventory.ApplyMovementUseCase
	listUC  *inventory.ListMovementsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(applyUC *inventory.ApplyMovementUseCase, listUC *inventory.ListMovementsUseCase) *InventoryHandler {
	return &InventoryHandler{applyUC: applyUC, listUC: listUC}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  in suma, out resta (rechaza salidas mayores al saldo), adjustment
//
//	sobreescribe el saldo con el total del conteo físico.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "drug_id, type, quantity, reason, reference, notes"
// @Success      201   {object}  dto.ApplyMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.applyUC.ApplyMovement(c.Context(), inventory.MovementInput{
		DrugID:    in.DrugID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		Notes:     in.Notes,
		UserID:    GetUserID(c),
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "medicamento no encontrado"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	m := result.Movement
	return c.Status(fiber.StatusCreated).JSON(dto.ApplyMovementResponse{
		Movement: dto.MovementResponse{
			ID:           m.ID,
			DrugID:       m.DrugID,
			Type:         m.Type,
			Quantity:     m.Quantity,
			Reason:       m.Reason,
			Reference:    m.Reference,
			Notes:        m.Notes,
			BalanceAfter: m.BalanceAfter,
			CreatedAt:    m.CreatedAt,
			CreatedBy:    m.CreatedBy,
		},
		NewBalance: result.NewBalance,
	})
}

// ListMovements godoc
// @Summary      Historial de movimientos de un medicamento
// @Description  Filtros combinables: type (in/out/adjustment), date_range
//
//	(7days/30days/90days/all) y search (motivo, referencia o usuario,
//	sin distinguir mayúsculas ni tildes). Incluye totales y tendencia de uso
//	calculados sobre el conjunto filtrado completo, no sobre la página.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del medicamento"
// @Param        type        query  string  false  "in, out o adjustment"
// @Param        date_range  query  string  false  "7days, 30days, 90days, all (default all)"
// @Param        search      query  string  false  "Texto a buscar"
// @Param        limit       query  int     false  "Tamaño de página (default 20)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drugs/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.listUC.ListMovements(c.Context(), c.Params("id"), in, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "medicamento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
