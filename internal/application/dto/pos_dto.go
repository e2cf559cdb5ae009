package dto

// PosResponse una sucursal del directorio.
type PosResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Plan     string `json:"plan"`
	IsActive bool   `json:"is_active"`
}

// SwitchPosRequest cambio de sucursal activa (solo superadmin).
type SwitchPosRequest struct {
	PosID int `json:"pos_id" validate:"required"`
}
