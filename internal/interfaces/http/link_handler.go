package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/application/links"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
	"github.com/tu-usuario/affiliate-portal/pkg/metrics"
)

// LinkHandler maneja la emisión de enlaces y el tracking de clics.
type LinkHandler struct {
	uc  *links.LinkUseCase
	mtr *metrics.Metrics
	log *logger.Logger
}

// NewLinkHandler construye el handler de enlaces.
func NewLinkHandler(uc *links.LinkUseCase, mtr *metrics.Metrics, log *logger.Logger) *LinkHandler {
	return &LinkHandler{uc: uc, mtr: mtr, log: log}
}

// Generate godoc
// @Summary      Emitir (o recuperar) el enlace del par usuario-empresa
// @Tags         links
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateLinkRequest  true  "companyId"
// @Success      200  {object}  dto.LinkResponse  "enlace ya existente"
// @Success      201  {object}  dto.LinkResponse  "enlace recién emitido"
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /links/generate [post]
func (h *LinkHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateLinkRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CompanyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "companyId es requerido"})
	}
	out, created, err := h.uc.Issue(c.UserContext(), GetUserID(c), in.CompanyID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "la empresa no existe o está inactiva"})
		}
		return internalError(c, h.log, "emisión de enlace", err)
	}
	if created {
		h.mtr.LinksIssued.Inc()
		return c.Status(fiber.StatusCreated).JSON(out)
	}
	return c.JSON(out)
}

// MyLinks godoc
// @Summary      Listar los enlaces del afiliado autenticado
// @Tags         links
// @Produce      json
// @Success      200  {array}  dto.LinkResponse
// @Security     BearerAuth
// @Router       /links/my-links [get]
func (h *LinkHandler) MyLinks(c *fiber.Ctx) error {
	out, err := h.uc.MyLinks(c.UserContext(), GetUserID(c))
	if err != nil {
		return internalError(c, h.log, "listado de enlaces", err)
	}
	return c.JSON(out)
}

// Track godoc
// @Summary      Registrar un clic sobre un tracking code
// @Description  Endpoint público. Siempre responde success, exista o no el
// @Description  código: no filtra qué códigos son válidos.
// @Tags         links
// @Produce      json
// @Param        trackingCode  path  string  true  "tracking code del enlace"
// @Success      200  {object}  dto.SuccessResponse
// @Router       /links/track/{trackingCode} [post]
func (h *LinkHandler) Track(c *fiber.Ctx) error {
	found, err := h.uc.TrackClick(c.UserContext(), c.Params("trackingCode"))
	if err != nil {
		return internalError(c, h.log, "tracking de clic", err)
	}
	if found {
		h.mtr.ClicksTracked.Inc()
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
