package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/agendapos/internal/application/session"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
)

func intPtr(v int) *int { return &v }

func TestMemoryStore_RestaurarSesionInexistente(t *testing.T) {
	store := session.NewMemoryStore()
	rec, err := store.Restore(context.Background(), "no-existe")
	require.NoError(t, err, "la ausencia de sesión no es un error")
	assert.Nil(t, rec)
}

func TestMemoryStore_PersistirYRestaurar(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	in := &session.Record{
		Identity:    entity.Identity{Username: "ana", Role: entity.RoleSuperadmin, Name: "Ana"},
		ActivePosID: intPtr(3),
	}
	require.NoError(t, store.Persist(ctx, "sid-1", in))

	out, err := store.Restore(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "ana", out.Identity.Username)
	require.NotNil(t, out.ActivePosID)
	assert.Equal(t, 3, *out.ActivePosID)
}

// Clear debe ser idempotente: limpiar dos veces no falla.
func TestMemoryStore_ClearIdempotente(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Persist(ctx, "sid-1", &session.Record{
		Identity: entity.Identity{Username: "ana", Role: entity.RoleAdmin},
	}))
	require.NoError(t, store.Clear(ctx, "sid-1"))
	require.NoError(t, store.Clear(ctx, "sid-1"), "segundo clear también debe pasar")

	rec, err := store.Restore(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

// ──────────────────────────────────────────────────────────────────────────────
// Context: dueño del puntero de sucursal activa
// ──────────────────────────────────────────────────────────────────────────────

func TestContext_Invitado(t *testing.T) {
	sess := session.NewGuestContext()
	assert.Nil(t, sess.Identity(), "un invitado no tiene identidad")
	assert.Nil(t, sess.ActivePos())

	require.NoError(t, sess.SetActivePos(context.Background(), intPtr(9)))
	require.NotNil(t, sess.ActivePos())
	assert.Equal(t, 9, *sess.ActivePos())
}

// WithActivePos restaura el puntero previo en la salida normal.
func TestContext_WithActivePos_RestauraAlSalir(t *testing.T) {
	sess := session.NewGuestContext()
	ctx := context.Background()
	require.NoError(t, sess.SetActivePos(ctx, intPtr(2)))

	var dentro int
	err := sess.WithActivePos(ctx, 7, func() error {
		dentro = *sess.ActivePos()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, dentro, "dentro del scope el puntero apunta al objetivo")
	require.NotNil(t, sess.ActivePos())
	assert.Equal(t, 2, *sess.ActivePos(), "al salir se restaura el valor previo")
}

// WithActivePos restaura el puntero aunque fn falle.
func TestContext_WithActivePos_RestauraEnError(t *testing.T) {
	sess := session.NewGuestContext()
	ctx := context.Background()

	fallo := errors.New("escritura fallida")
	err := sess.WithActivePos(ctx, 7, func() error {
		return fallo
	})
	assert.ErrorIs(t, err, fallo)
	assert.Nil(t, sess.ActivePos(), "el puntero previo (ninguno) se restaura también en error")
}

// Con almacén, WithActivePos persiste el swap y la restauración.
func TestContext_WithActivePos_PersisteCambios(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()
	rec := &session.Record{
		Identity:    entity.Identity{Username: "ana", Role: entity.RoleSuperadmin},
		ActivePosID: intPtr(1),
	}
	require.NoError(t, store.Persist(ctx, "sid-1", rec))
	sess := session.NewContext(store, "sid-1", rec)

	require.NoError(t, sess.WithActivePos(ctx, 5, func() error {
		saved, err := store.Restore(ctx, "sid-1")
		require.NoError(t, err)
		require.NotNil(t, saved.ActivePosID)
		assert.Equal(t, 5, *saved.ActivePosID, "el swap queda persistido durante el scope")
		return nil
	}))

	saved, err := store.Restore(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, saved.ActivePosID)
	assert.Equal(t, 1, *saved.ActivePosID, "la restauración también queda persistida")
}
