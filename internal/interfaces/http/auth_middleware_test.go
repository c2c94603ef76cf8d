package http_test

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpiface "github.com/tu-usuario/affiliate-portal/internal/interfaces/http"
	"github.com/tu-usuario/affiliate-portal/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func buildApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/protegida", httpiface.AuthMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": httpiface.GetUserID(c)})
	})
	return app
}

func errorCode(t *testing.T, resp *nethttp.Response) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildApp(testSecret)

	req := httptest.NewRequest("GET", "/protegida", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildApp(testSecret)

	for _, header := range []string{"Basic abc123", "solo-un-token", "Bearer "} {
		req := httptest.NewRequest("GET", "/protegida", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildApp(testSecret)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestAuthMiddleware_FirmaDeOtroSecret_Retorna401(t *testing.T) {
	app := buildApp(testSecret)
	token, err := jwt.Generate("otro-secreto", "user-1", "portal", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido_ExponeUserID(t *testing.T) {
	app := buildApp(testSecret)
	token, err := jwt.Generate(testSecret, "user-42", "portal", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegida", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		UserID string `json:"userId"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-42", body.UserID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del paquete jwt
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateParse_RoundTrip(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-7", "portal", 60)
	require.NoError(t, err)

	userID, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-7", userID)
}

func TestJWT_TokenExpirado_Falla(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-7", "portal", -1)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = jwt.Parse(testSecret, token)
	assert.Error(t, err, "un token con expiración en el pasado no valida")
}

func TestJWT_SecretVacio_Falla(t *testing.T) {
	_, err := jwt.Generate("", "user-7", "portal", 60)
	assert.Error(t, err)

	_, err = jwt.Parse("", "cualquier-token")
	assert.Error(t, err)
}
