package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/agendapos/internal/domain/entity"
)

// El alias histórico "empleado" debe colapsar en "barbero" en la frontera de
// normalización; el resto del sistema nunca ve el alias.
func TestNormalizeRole_AliasEmpleado(t *testing.T) {
	assert.Equal(t, entity.RoleBarbero, entity.NormalizeRole("empleado"))
}

// Normalizar un rol ya canónico lo devuelve sin cambios (idempotencia).
func TestNormalizeRole_Idempotente(t *testing.T) {
	canonicos := []string{
		entity.RolePlatformOwner,
		entity.RoleSuperadmin,
		entity.RoleAdmin,
		entity.RoleBarbero,
		entity.RoleCliente,
	}
	for _, r := range canonicos {
		assert.Equal(t, r, entity.NormalizeRole(r), "rol canónico %q debe quedar igual", r)
		assert.Equal(t, entity.NormalizeRole(r), entity.NormalizeRole(entity.NormalizeRole(r)))
	}
}

// Un rol desconocido pasa sin cambios; el resolver lo rechaza después.
func TestNormalizeRole_Desconocido(t *testing.T) {
	assert.Equal(t, "visitante", entity.NormalizeRole("visitante"))
}

func TestRequiresPos(t *testing.T) {
	casos := []struct {
		role     string
		requiere bool
	}{
		{entity.RoleAdmin, true},
		{entity.RoleBarbero, true},
		{entity.RoleSuperadmin, false}, // se vincula a la primera del directorio
		{entity.RolePlatformOwner, false},
		{entity.RoleCliente, false}, // elige sucursal después del login
	}
	for _, c := range casos {
		assert.Equal(t, c.requiere, entity.RequiresPos(c.role), "rol %q", c.role)
	}
}

func TestHasPermission_ClaveAusente(t *testing.T) {
	u := &entity.SystemUser{}
	assert.False(t, u.HasPermission("editar_precios"), "sin mapa de permisos nada está concedido")

	u.Permissions = map[string]bool{"editar_precios": true}
	assert.True(t, u.HasPermission("editar_precios"))
	assert.False(t, u.HasPermission("anular_ventas"), "clave ausente = no concedida")
}
