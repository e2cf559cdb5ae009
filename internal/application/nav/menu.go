// Package nav calcula la superficie de navegación visible para un principal:
// una función pura de (rol, plan de la sucursal, sucursal elegida por el
// cliente) a grupos de menú ordenados. No consulta estado; el llamador le
// comunica todo lo que necesita.
package nav

import "github.com/tu-usuario/agendapos/internal/domain/entity"

// Item una entrada de menú. Roles declara quiénes pueden verla.
type Item struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Roles []string `json:"-"`
}

// Group un grupo de entradas con encabezado. Un grupo que queda sin entradas
// tras el filtrado no rinde su encabezado.
type Group struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Items []Item `json:"items"`
}

// groupMiBarberia se suprime entero para el cliente hasta que elige sucursal.
const groupMiBarberia = "mi-barberia"

// hiddenOnSoloPlan entradas ocultas cuando el plan de la sucursal es el más
// restringido.
var hiddenOnSoloPlan = map[string]bool{
	"empleados": true,
	"reportes":  true,
	"caja":      true,
}

// multisucursalOnlyItem la mensajería de negocio solo existe en el plan más amplio.
const multisucursalOnlyItem = "mensajeria"

// catalog el catálogo completo de navegación, en orden de render.
var catalog = []Group{
	{
		Key:   "operacion",
		Label: "Operación",
		Items: []Item{
			{Key: "agenda", Label: "Agenda", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin, entity.RoleBarbero}},
			{Key: "ventas", Label: "Ventas", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin, entity.RoleBarbero}},
			{Key: "caja", Label: "Caja", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin}},
		},
	},
	{
		Key:   "gestion",
		Label: "Gestión",
		Items: []Item{
			{Key: "clientes", Label: "Clientes", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin}},
			{Key: "productos", Label: "Productos", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin}},
			{Key: "empleados", Label: "Empleados", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin}},
			{Key: "reportes", Label: "Reportes", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin}},
			{Key: "mensajeria", Label: "Mensajería", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin}},
		},
	},
	{
		Key:   "plataforma",
		Label: "Plataforma",
		Items: []Item{
			{Key: "barberias", Label: "Barberías", Roles: []string{entity.RolePlatformOwner}},
			{Key: "propietarios", Label: "Propietarios", Roles: []string{entity.RolePlatformOwner}},
			{Key: "metricas", Label: "Métricas", Roles: []string{entity.RolePlatformOwner}},
		},
	},
	{
		Key:   groupMiBarberia,
		Label: "Mi barbería",
		Items: []Item{
			{Key: "reservar", Label: "Reservar cita", Roles: []string{entity.RoleCliente}},
			{Key: "mis-citas", Label: "Mis citas", Roles: []string{entity.RoleCliente}},
		},
	},
	{
		Key:   "cuenta",
		Label: "Cuenta",
		Items: []Item{
			{Key: "configuracion", Label: "Configuración", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin}},
			{Key: "perfil", Label: "Mi perfil", Roles: []string{entity.RoleAdmin, entity.RoleSuperadmin, entity.RoleBarbero, entity.RoleCliente}},
		},
	},
}

// Visible devuelve los grupos visibles para el rol dado bajo el plan de la
// sucursal activa. clienteConSucursal indica si el cliente ya completó la
// selección de sucursal (capacidad que se comunica, no se calcula aquí).
// Dos pasadas independientes: primero se filtran entradas, después se podan
// los grupos vacíos.
func Visible(role, plan string, clienteConSucursal bool) []Group {
	role = entity.NormalizeRole(role)

	var out []Group
	for _, g := range catalog {
		if g.Key == groupMiBarberia && !clienteConSucursal {
			continue
		}
		var items []Item
		for _, it := range g.Items {
			if !roleAllowed(it.Roles, role) {
				continue
			}
			if plan == entity.PlanSolo && hiddenOnSoloPlan[it.Key] {
				continue
			}
			if it.Key == multisucursalOnlyItem && plan != entity.PlanMultisucursal {
				continue
			}
			items = append(items, it)
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, Group{Key: g.Key, Label: g.Label, Items: items})
	}
	return out
}

func roleAllowed(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
