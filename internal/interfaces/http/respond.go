package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
	"github.com/tu-usuario/affiliate-portal/pkg/logger"
)

// internalError loguea el error real del lado del servidor y responde un 500
// genérico: el detalle (SQL, drivers, rutas de archivo) nunca viaja al cliente.
func internalError(c *fiber.Ctx, log *logger.Logger, op string, err error) error {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(op)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
