package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/application/reports"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
)

// DashboardHandler expone el resumen y la serie del dashboard del afiliado.
type DashboardHandler struct {
	uc  *reports.ReportUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler del dashboard.
func NewDashboardHandler(uc *reports.ReportUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Stats godoc
// @Summary      Resumen del dashboard del afiliado
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Security     BearerAuth
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.UserContext(), GetUserID(c))
	if err != nil {
		return internalError(c, h.log, "stats del dashboard", err)
	}
	return c.JSON(out)
}

// ChartData godoc
// @Summary      Serie diaria de conversiones y comisión
// @Tags         dashboard
// @Produce      json
// @Param        period  query  string  false  "7days | 30days | 90days"
// @Success      200  {array}  dto.ChartPointResponse
// @Security     BearerAuth
// @Router       /dashboard/chart-data [get]
func (h *DashboardHandler) ChartData(c *fiber.Ctx) error {
	out, err := h.uc.ChartData(c.UserContext(), GetUserID(c), c.Query("period", "7days"))
	if err != nil {
		return internalError(c, h.log, "serie del dashboard", err)
	}
	if out == nil {
		out = []dto.ChartPointResponse{}
	}
	return c.JSON(out)
}
