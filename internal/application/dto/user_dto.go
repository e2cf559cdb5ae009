package dto

import "time"

// SaveUserRequest alta o edición de un usuario desde el formulario
// administrativo. En un alta Password es obligatorio; en una edición,
// Password vacío significa "sin cambios".
type SaveUserRequest struct {
	Username    string          `json:"username" validate:"required"`
	Password    string          `json:"password"`
	Name        string          `json:"name" validate:"required"`
	Role        string          `json:"role" validate:"required"`
	PosID       *int            `json:"pos_id,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	Username    string          `json:"username"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	PosID       *int            `json:"pos_id,omitempty"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	HasPassword bool            `json:"has_password"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
