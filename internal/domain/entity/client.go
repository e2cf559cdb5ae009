package entity

import "time"

// Client es la ficha de cliente que crea el flujo de auto-registro. Queda
// escrita bajo la sucursal activa en el momento del alta (la de referido o la
// sucursal por defecto).
type Client struct {
	ID        string
	PosID     int // sucursal bajo la que se creó la ficha
	Name      string
	Username  string
	Phone     string
	CreatedAt time.Time
}
