package entity

import "time"

// Identity es la representación normalizada y persistida de un principal con
// sesión iniciada. Es el único registro de "quién está logueado": se construye
// tras una autenticación exitosa, se persiste en el almacén de sesiones y se
// destruye en el logout. Todo campo opcional es parte del esquema declarado;
// nunca se agregan campos de forma oportunista.
type Identity struct {
	Username string    `json:"username"`
	Role     string    `json:"role"` // siempre canónico después de NormalizeRole
	Name     string    `json:"name"`
	PosID    *int      `json:"pos_id,omitempty"` // sucursal vinculada, si el rol la tiene
	LoginAt  time.Time `json:"login_at"`
}
