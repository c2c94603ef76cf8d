package http

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/affiliate-portal/internal/application/dto"
)

// HeaderWebhookSecret header con el secreto compartido del anunciante.
const HeaderWebhookSecret = "X-Webhook-Secret"

// WebhookAuthMiddleware autentica los callbacks del anunciante con un secreto
// compartido. Comparación en tiempo constante; con el secreto sin configurar
// los webhooks quedan deshabilitados.
func WebhookAuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "WEBHOOKS_DISABLED", Message: "webhooks no configurados"})
		}
		got := c.Get(HeaderWebhookSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SECRET", Message: "secreto de webhook inválido"})
		}
		return c.Next()
	}
}
