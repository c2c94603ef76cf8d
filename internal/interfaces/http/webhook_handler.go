package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/affiliate-portal/internal/application/conversions"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/internal/domain"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
	"github.com/tu-usuario/affiliate-portal/pkg/metrics"
)

// WebhookHandler recibe los callbacks del anunciante: alta de conversiones
// y transiciones de estado.
type WebhookHandler struct {
	uc  *conversions.ConversionUseCase
	mtr *metrics.Metrics
	log *logger.Logger
}

// NewWebhookHandler construye el handler de webhooks.
func NewWebhookHandler(uc *conversions.ConversionUseCase, mtr *metrics.Metrics, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{uc: uc, mtr: mtr, log: log}
}

// RecordConversion godoc
// @Summary      Registrar una conversión reportada por el anunciante
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header  string  true  "secreto compartido"
// @Param        body  body  dto.RecordConversionRequest  true  "tracking_code, revenue"
// @Success      201  {object}  dto.ConversionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /webhooks/conversions [post]
func (h *WebhookHandler) RecordConversion(c *fiber.Ctx) error {
	var in dto.RecordConversionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TrackingCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tracking_code es requerido"})
	}
	out, err := h.uc.Record(c.UserContext(), in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "revenue no puede ser negativo"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LINK_NOT_FOUND", Message: "tracking code desconocido"})
		}
		return internalError(c, h.log, "alta de conversión", err)
	}
	h.mtr.ConversionsRecorded.WithLabelValues(out.Status).Inc()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateStatus godoc
// @Summary      Transicionar el estado de una conversión
// @Description  Transiciones válidas: pending→approved, pending→rejected,
// @Description  approved→paid. Cualquier otra responde 409.
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        X-Webhook-Secret  header  string  true  "secreto compartido"
// @Param        id    path  string  true  "ID de la conversión"
// @Param        body  body  dto.UpdateConversionStatusRequest  true  "status destino"
// @Success      200  {object}  dto.ConversionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /webhooks/conversions/{id}/status [patch]
func (h *WebhookHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateConversionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status desconocido"})
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CONVERSION_NOT_FOUND", Message: "la conversión no existe"})
		case domain.ErrInvalidStatus:
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
		}
		return internalError(c, h.log, "transición de conversión", err)
	}
	return c.JSON(out)
}
