package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/application/reports"
)

// ReportHandler maneja reportes de inventario (protegido).
type ReportHandler struct {
	lowStockUC  *reports.LowStockUseCase
	expiryUC    *reports.ExpiryUseCase
	dashboardUC *reports.DashboardUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(lowStockUC *reports.LowStockUseCase, expiryUC *reports.ExpiryUseCase, dashboardUC *reports.DashboardUseCase) *ReportHandler {
	return &ReportHandler{lowStockUC: lowStockUC, expiryUC: expiryUC, dashboardUC: dashboardUC}
}

// LowStock godoc
// @Summary      Reporte de stock bajo
// @Description  Medicamentos activos agotados, bajo el umbral o cerca del umbral,
//
//	con cantidad sugerida de pedido y tendencia de uso de los últimos 90 días.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockReportResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.lowStockUC.GenerateLowStockReport(c.Context(), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Expiry godoc
// @Summary      Reporte de vencimientos
// @Description  Medicamentos vencidos y por vencer en los próximos 30 días,
//
//	ordenados por días restantes.
//
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ExpiryReportResponse
// @Router       /api/reports/expiry [get]
func (h *ReportHandler) Expiry(c *fiber.Ctx) error {
	out, err := h.expiryUC.GenerateExpiryReport(c.Context(), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Resumen del tablero
// @Description  Conteos por estado de stock y vencimiento, y valor del inventario a costo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.GenerateDashboard(c.Context(), time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
