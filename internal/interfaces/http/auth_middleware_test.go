package http_test

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/tu-usuario/agendapos/internal/interfaces/http"
	"github.com/tu-usuario/agendapos/pkg/jwt"
)

const testSecret = "secreto-de-prueba"

func signedToken(t *testing.T, sessionID, username, role string, posID *int) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, sessionID, username, role, posID, "agendapos-test", 5)
	require.NoError(t, err)
	return token
}

func middlewareApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{apphttp.AuthMiddleware(testSecret)}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"session_id": apphttp.GetSessionID(c),
			"username":   apphttp.GetUsername(c),
			"role":       apphttp.GetRole(c),
			"pos_id":     apphttp.GetPosID(c),
		})
	})
	app.Get("/protegido", handlers...)
	return app
}

func TestAuthMiddleware_SinHeader(t *testing.T) {
	app := middlewareApp()

	req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app := middlewareApp()

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer  "} {
		req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app := middlewareApp()

	otro, err := jwt.Generate("otro-secreto", "sid", "barbero1", "barbero", nil, "agendapos-test", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+otro)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

// El middleware expone los claims en Locals y normaliza el rol legacy del token.
func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := middlewareApp()
	pos := 5
	token := signedToken(t, "sid-1", "barbero1", "empleado", &pos)

	req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		SessionID string `json:"session_id"`
		Username  string `json:"username"`
		Role      string `json:"role"`
		PosID     *int   `json:"pos_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "sid-1", body.SessionID)
	assert.Equal(t, "barbero1", body.Username)
	assert.Equal(t, "barbero", body.Role, "el alias legacy se normaliza al entrar")
	require.NotNil(t, body.PosID)
	assert.Equal(t, 5, *body.PosID)
}

func TestRequireRole_Permitido(t *testing.T) {
	app := middlewareApp(apphttp.RequireRole("superadmin", "admin"))
	token := signedToken(t, "sid-1", "admin1", "admin", nil)

	req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_Denegado(t *testing.T) {
	app := middlewareApp(apphttp.RequireRole("superadmin"))
	pos := 5
	token := signedToken(t, "sid-1", "barbero1", "barbero", &pos)

	req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

// RequireRole evalúa el alias ya normalizado: un token viejo con "empleado"
// pasa por las rutas que piden "barbero".
func TestRequireRole_AliasNormalizado(t *testing.T) {
	app := middlewareApp(apphttp.RequireRole("barbero"))
	pos := 5
	token := signedToken(t, "sid-1", "barbero1", "empleado", &pos)

	req := httptest.NewRequest(nethttp.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
