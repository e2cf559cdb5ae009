package entity

import "time"

// SystemUser representa una cuenta del sistema, ligada (o no) a un punto de venta.
// Password es opaco: el servicio de datos lo entrega tal cual y aquí solo se
// compara; un valor vacío significa "sin contraseña asignada" y bloquea el login
// hasta que un administrador asigne una.
type SystemUser struct {
	Username    string          // clave única
	Password    string          // opaco; "" = sin contraseña asignada
	Name        string
	Role        string          // ver constantes Role*; se normaliza al entrar al núcleo
	PosID       *int            // sucursal asignada; nil = sin asignar
	Permissions map[string]bool // capacidades granulares; clave ausente = no concedida
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPermission informa si la capacidad está concedida. Clave ausente = false.
func (u *SystemUser) HasPermission(capability string) bool {
	if u.Permissions == nil {
		return false
	}
	return u.Permissions[capability]
}
