package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// ReportHandler expone las proyecciones de solo lectura (datos, sin formato).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Totales del tablero
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en o por debajo de su stock mínimo
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.LowStockResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// InventoryValue godoc
// @Summary      Valorización del inventario a costo por categoría
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.InventoryValueResponse
// @Router       /api/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	out, err := h.uc.InventoryValue()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
