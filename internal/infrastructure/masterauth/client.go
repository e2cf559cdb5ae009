// Package masterauth es el adaptador HTTP hacia la función remota de
// confianza que verifica credenciales del dueño de la plataforma.
package masterauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tu-usuario/agendapos/internal/application/auth"
)

// Verificar en tiempo de compilación que Client implementa MasterAuthenticator.
var _ auth.MasterAuthenticator = (*Client)(nil)

// Client adaptador que implementa MasterAuthenticator contra un endpoint HTTP.
// Usa net/http de la librería estándar; no requiere SDK.
type Client struct {
	authURL    string
	httpClient *http.Client
}

// New construye el adaptador. Si authURL está vacío las llamadas devuelven un
// error descriptivo en lugar de panic.
func New(authURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		authURL:    authURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Estructuras del protocolo del servicio de autenticación master ────────────

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	User *struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"user"`
	Error string `json:"error,omitempty"`
}

// Authenticate envía las credenciales al servicio remoto y devuelve el usuario
// verificado. Cualquier respuesta que no sea 200 con un objeto user cuenta
// como rechazo.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*auth.MasterUser, error) {
	if c.authURL == "" {
		return nil, fmt.Errorf("masterauth: MASTER_AUTH_URL no configurado")
	}

	body, err := json.Marshal(authRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("masterauth: serializar petición: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("masterauth: crear petición: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("masterauth: llamada remota: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("masterauth: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("masterauth: rechazo remoto (HTTP %d)", resp.StatusCode)
	}

	var out authResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("masterauth: respuesta inválida: %w", err)
	}
	if out.Error != "" || out.User == nil {
		return nil, fmt.Errorf("masterauth: rechazo remoto: %s", out.Error)
	}

	return &auth.MasterUser{Username: out.User.Username, Name: out.User.Name}, nil
}
