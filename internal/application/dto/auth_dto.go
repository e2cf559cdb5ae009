package dto

import "time"

// LoginRequest entrada para login. Mode selecciona la estrategia de
// verificación: "general" (usuario de sucursal) o "master" (dueño de la
// plataforma, verificado remotamente).
type LoginRequest struct {
	Mode     string `json:"mode" validate:"omitempty,oneof=general master"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse la identidad normalizada de la sesión.
type IdentityResponse struct {
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Name     string    `json:"name"`
	PosID    *int      `json:"pos_id,omitempty"`
	LoginAt  time.Time `json:"login_at"`
}

// SessionResponse estado resuelto de la sesión: vista inicial, vínculo de
// sucursal y capacidades de cambio. Es lo que la capa de presentación usa
// para montar el shell.
type SessionResponse struct {
	Authenticated bool              `json:"authenticated"`
	State         string            `json:"state"`
	View          string            `json:"view"`
	Identity      *IdentityResponse `json:"identity,omitempty"`
	ActivePosID   *int              `json:"active_pos_id,omitempty"`
	PosName       string            `json:"pos_name,omitempty"`
	CanSwitchPos  bool              `json:"can_switch_pos"`
}

// LoginResponse salida de login: token de API más la sesión resuelta.
type LoginResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

// RegisterRequest entrada del auto-registro de clientes. ReferralPosID llega
// del parámetro de enlace de referido, si lo hubo.
type RegisterRequest struct {
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	Name          string `json:"name" validate:"required"`
	Phone         string `json:"phone" validate:"omitempty,max=30"`
	ReferralPosID *int   `json:"referral_pos_id,omitempty"`
}

// RegisterResponse salida del auto-registro: username para pre-llenar el
// formulario de login y la sucursal bajo la que quedó la ficha.
type RegisterResponse struct {
	Username string `json:"username"`
	PosID    int    `json:"pos_id"`
}

// ReferralResponse sucursal de referido resuelta desde el enlace de entrada.
type ReferralResponse struct {
	PosID   int    `json:"pos_id"`
	PosName string `json:"pos_name"`
}
