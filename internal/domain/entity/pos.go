package entity

import "time"

// Planes de cuenta disponibles por punto de venta. El plan es propiedad de la
// sucursal, no del usuario, y regula qué entradas de navegación son visibles.
const (
	PlanSolo          = "solo"          // un solo profesional, el plan más restringido
	PlanSucursal      = "sucursal"      // una sucursal con personal
	PlanMultisucursal = "multisucursal" // cadena de sucursales, el plan más amplio
)

// PointOfSale representa una sucursal (unidad de aislamiento de datos).
type PointOfSale struct {
	ID        int
	Name      string
	Address   string
	OwnerID   string
	Plan      string // ver constantes Plan*
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
