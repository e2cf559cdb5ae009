package entity

// Roles canónicos del sistema.
const (
	RolePlatformOwner = "platform_owner" // dueño de la plataforma, sin sucursal
	RoleSuperadmin    = "superadmin"     // administra todas las sucursales
	RoleAdmin         = "admin"          // administra una sucursal
	RoleBarbero       = "barbero"        // personal operativo de una sucursal
	RoleCliente       = "cliente"        // cliente final, elige sucursal después del login
)

// roleAliases mapa total de rol almacenado → rol canónico. El alias histórico
// "empleado" se colapsa en "barbero"; los canónicos se mapean a sí mismos para
// que la normalización sea idempotente.
var roleAliases = map[string]string{
	"empleado":        RoleBarbero,
	RolePlatformOwner: RolePlatformOwner,
	RoleSuperadmin:    RoleSuperadmin,
	RoleAdmin:         RoleAdmin,
	RoleBarbero:       RoleBarbero,
	RoleCliente:       RoleCliente,
}

// NormalizeRole traduce un rol crudo (como viene de la base de datos o de una
// sesión restaurada) a su forma canónica. Se invoca una sola vez, en la frontera
// donde los roles entran al núcleo; todo consumidor posterior ve solo canónicos.
// Un rol desconocido se devuelve sin cambios.
func NormalizeRole(role string) string {
	if canonical, ok := roleAliases[role]; ok {
		return canonical
	}
	return role
}

// RequiresPos informa si el rol exige una sucursal asignada para iniciar sesión.
// superadmin no la exige: se vincula a la primera del directorio.
// cliente tampoco: elige sucursal después del login.
func RequiresPos(role string) bool {
	return role == RoleAdmin || role == RoleBarbero
}
