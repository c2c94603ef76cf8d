package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/application/reports"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
)

// ReportHandler genera reportes por rango de fechas y agregados mensuales.
type ReportHandler struct {
	uc  *reports.ReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *reports.ReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Generate godoc
// @Summary      Generar reporte de conversiones por rango de fechas
// @Description  startDate y endDate (YYYY-MM-DD) van juntos o no van; format
// @Description  acepta json, csv y pdf; save=true persiste además un snapshot.
// @Tags         reports
// @Produce      json
// @Param        startDate  query  string  false  "inicio del rango (YYYY-MM-DD)"
// @Param        endDate    query  string  false  "fin del rango (YYYY-MM-DD)"
// @Param        format     query  string  false  "json | csv | pdf"
// @Param        save       query  bool    false  "persistir snapshot"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /reports/generate [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	format := c.Query("format", "json")
	save := c.QueryBool("save")

	if format != "json" && format != "csv" && format != "pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "format debe ser json, csv o pdf"})
	}

	report, err := h.uc.Generate(c.UserContext(), GetUserID(c), startDate, endDate, save)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido: ambas fechas YYYY-MM-DD o ninguna"})
		}
		return internalError(c, h.log, "generación de reporte", err)
	}

	switch format {
	case "csv":
		data, err := reports.ExportCSV(report)
		if err != nil {
			return internalError(c, h.log, "export CSV", err)
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+reportFilename(startDate, endDate, "csv"))
		return c.Send(data)
	case "pdf":
		data, err := h.uc.ExportPDF(c.UserContext(), report)
		if err != nil {
			return internalError(c, h.log, "export PDF", err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, "attachment; filename="+reportFilename(startDate, endDate, "pdf"))
		return c.Send(data)
	}
	return c.JSON(report)
}

// reportFilename arma el nombre del adjunto; sin rango el reporte cubre todo
// el histórico y el nombre lo dice en lugar de dejar los huecos vacíos.
func reportFilename(startDate, endDate, ext string) string {
	if startDate == "" {
		return "report-all." + ext
	}
	return fmt.Sprintf("report-%s-%s.%s", startDate, endDate, ext)
}

// Monthly godoc
// @Summary      Agregados por mes calendario (últimos 12 meses con actividad)
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.MonthlyRowResponse
// @Security     BearerAuth
// @Router       /reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	out, err := h.uc.Monthly(c.UserContext(), GetUserID(c))
	if err != nil {
		return internalError(c, h.log, "reporte mensual", err)
	}
	if out == nil {
		out = []dto.MonthlyRowResponse{}
	}
	return c.JSON(out)
}

// Saved godoc
// @Summary      Listar los snapshots de reporte persistidos del afiliado
// @Description  Los snapshots se crean con save=true en /reports/generate.
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dto.SavedReportResponse
// @Security     BearerAuth
// @Router       /reports/saved [get]
func (h *ReportHandler) Saved(c *fiber.Ctx) error {
	out, err := h.uc.Saved(c.UserContext(), GetUserID(c))
	if err != nil {
		return internalError(c, h.log, "snapshots de reporte", err)
	}
	if out == nil {
		out = []dto.SavedReportResponse{}
	}
	return c.JSON(out)
}
