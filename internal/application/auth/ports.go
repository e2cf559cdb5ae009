package auth

import "context"

// MasterUser es el resultado de la verificación remota de credenciales master.
type MasterUser struct {
	Username string
	Name     string
}

// MasterAuthenticator es el puerto hacia la función remota de confianza que
// verifica credenciales del dueño de la plataforma. Este núcleo nunca compara
// esas credenciales localmente; solo interpreta el resultado. Cualquier
// rechazo llega como error.
type MasterAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (*MasterUser, error)
}
