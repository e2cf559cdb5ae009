package session

import (
	"context"

	"github.com/tu-usuario/agendapos/internal/domain/entity"
)

// Context es el único dueño del puntero de "sucursal activa" de una sesión.
// Todo lector de datos con alcance de sucursal lo consulta; solo el resolver,
// el cambio explícito de sucursal y el helper WithActivePos lo escriben.
//
// Un Context sin Store (contexto de invitado) mantiene el puntero solo en
// memoria: es lo que usa el flujo de auto-registro, donde aún no hay sesión.
type Context struct {
	store     Store // nil = invitado, sin persistencia
	sessionID string
	rec       *Record
}

// NewContext construye el contexto de una sesión persistida.
func NewContext(store Store, sessionID string, rec *Record) *Context {
	if rec == nil {
		rec = &Record{}
	}
	return &Context{store: store, sessionID: sessionID, rec: rec}
}

// NewGuestContext construye un contexto de invitado (sin identidad ni almacén).
func NewGuestContext() *Context {
	return &Context{rec: &Record{}}
}

// Identity devuelve la identidad de la sesión, o nil para un invitado.
func (c *Context) Identity() *entity.Identity {
	if c.rec.Identity.Username == "" {
		return nil
	}
	return &c.rec.Identity
}

// ActivePos devuelve el puntero de sucursal activa; nil = ninguna.
func (c *Context) ActivePos() *int {
	return c.rec.ActivePosID
}

// SetActivePos escribe el puntero y lo persiste si la sesión tiene almacén.
func (c *Context) SetActivePos(ctx context.Context, id *int) error {
	c.rec.ActivePosID = id
	if c.store == nil {
		return nil
	}
	return c.store.Persist(ctx, c.sessionID, c.rec)
}

// ClearActivePos limpia el puntero de sucursal activa.
func (c *Context) ClearActivePos(ctx context.Context) error {
	return c.SetActivePos(ctx, nil)
}

// WithActivePos ejecuta fn con el puntero apuntando temporalmente a id y
// garantiza que el valor previo se restaura en toda salida, incluida la de
// error. Es el mecanismo con el que un visitante sin sesión crea datos bajo
// una sucursal concreta sin alterar el estado global de forma permanente.
func (c *Context) WithActivePos(ctx context.Context, id int, fn func() error) error {
	prev := c.rec.ActivePosID
	if err := c.SetActivePos(ctx, &id); err != nil {
		return err
	}
	defer func() {
		_ = c.SetActivePos(ctx, prev)
	}()
	return fn()
}
