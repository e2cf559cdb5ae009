package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/agendapos/internal/application/session"
	"github.com/tu-usuario/agendapos/internal/domain"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
	"github.com/tu-usuario/agendapos/pkg/logger"
)

// Estados de la resolución de sesión.
const (
	StateUnauthenticated = "unauthenticated"
	StateResolving       = "resolving"
	StateBound           = "bound"          // identidad con vista asignada (con o sin sucursal, según rol)
	StateClientUnbound   = "client_unbound" // cliente final sin sucursal elegida aún
	StateRejected        = "rejected"       // rol exige sucursal y no tiene; sesión desmontada
)

// Vistas iniciales por rol.
const (
	ViewLogin       = "login"
	ViewMaster      = "master"         // consola exclusiva del dueño de la plataforma
	ViewDashboard   = "dashboard"      // panel de administración de sucursal
	ViewAgenda      = "agenda"         // vista operativa del barbero
	ViewClienteHome = "inicio-cliente" // selección de sucursal / reservas del cliente
)

// unknownPosName placeholder cuando el id activo no aparece en el directorio.
const unknownPosName = "(sucursal desconocida)"

// nowFunc reemplazable en tests.
var nowFunc = time.Now

// Resolution es el resultado de resolver una identidad: estado, vista inicial
// y vínculo de sucursal. La capa de presentación monta el shell a partir de
// esto; las vistas con alcance de sucursal se rehacen completas cuando cambia
// ActivePosID, por lo que una respuesta en vuelo de la sucursal anterior
// simplemente se descarta.
type Resolution struct {
	State        string
	View         string
	Identity     *entity.Identity
	ActivePosID  *int
	PosName      string
	CanSwitchPos bool
}

// Resolver decide, a partir de una identidad autenticada o restaurada, la
// vista inicial y el vínculo de sucursal, y mantiene ambos consistentes ante
// cambios de sucursal y restauraciones. Es el único escritor del registro de
// sesión: el gateway de autenticación no persiste nada.
type Resolver struct {
	pos   repository.PosRepository
	store session.Store
	log   *logger.Logger
}

// New construye el resolver.
func New(pos repository.PosRepository, store session.Store, log *logger.Logger) *Resolver {
	return &Resolver{pos: pos, store: store, log: log}
}

// ResolveLogin toma el usuario autenticado por el gateway, construye la
// Identity y la vincula según su rol. Persiste el registro de sesión solo si
// la resolución termina en un estado válido; si el rol exige sucursal y no la
// tiene, la sesión se desmonta por completo y se devuelve ErrTenantRequired.
// Regla dura: nunca se entra a Bound con un requisito de sucursal colgante.
func (r *Resolver) ResolveLogin(ctx context.Context, sessionID string, user *entity.SystemUser) (*Resolution, error) {
	identity := &entity.Identity{
		Username: user.Username,
		Role:     entity.NormalizeRole(user.Role),
		Name:     user.Name,
		PosID:    user.PosID,
		LoginAt:  nowFunc(),
	}
	return r.resolve(ctx, sessionID, identity, nil)
}

// RestoreSession reconstruye la resolución desde el registro persistido.
// Un registro ausente o corrupto produce el estado no autenticado sin error:
// la app sigue al login en lugar de quedarse colgada. Un fallo de
// infraestructura del almacén sí se propaga (banner de conexión).
func (r *Resolver) RestoreSession(ctx context.Context, sessionID string) (*Resolution, error) {
	rec, err := r.store.Restore(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("restaurar sesión: %w", err)
	}
	if rec == nil {
		return &Resolution{State: StateUnauthenticated, View: ViewLogin}, nil
	}
	identity := rec.Identity
	// Frontera de normalización: un registro guardado por una versión anterior
	// puede traer el alias histórico del rol.
	identity.Role = entity.NormalizeRole(identity.Role)
	return r.resolve(ctx, sessionID, &identity, rec.ActivePosID)
}

// resolve ejecuta las transiciones Resolving → {Bound, ClientUnbound, Rejected}.
// prevActive conserva, en una restauración, la sucursal activa que el
// superadmin tenía elegida.
func (r *Resolver) resolve(ctx context.Context, sessionID string, identity *entity.Identity, prevActive *int) (*Resolution, error) {
	res := &Resolution{State: StateResolving, Identity: identity}

	switch identity.Role {
	case entity.RolePlatformOwner:
		// Consola master: sin vínculo de sucursal.
		res.State = StateBound
		res.View = ViewMaster

	case entity.RoleSuperadmin:
		res.CanSwitchPos = true
		res.View = ViewDashboard
		active, name, err := r.bindSuperadmin(ctx, prevActive)
		if err != nil {
			return nil, err
		}
		res.ActivePosID = active
		res.PosName = name
		res.State = StateBound

	case entity.RoleAdmin, entity.RoleBarbero:
		if identity.PosID == nil {
			// Sesión inválida: se desmonta entera antes de reportar.
			if clearErr := r.store.Clear(ctx, sessionID); clearErr != nil {
				r.log.Error().Err(clearErr).Msg("no se pudo limpiar la sesión rechazada")
			}
			res.State = StateRejected
			res.Identity = nil
			return res, domain.ErrTenantRequired
		}
		name, err := r.posName(ctx, *identity.PosID)
		if err != nil {
			return nil, err
		}
		res.ActivePosID = identity.PosID
		res.PosName = name
		res.State = StateBound
		if identity.Role == entity.RoleAdmin {
			res.View = ViewDashboard
		} else {
			res.View = ViewAgenda
		}

	case entity.RoleCliente:
		// El cliente elige sucursal después del login; el puntero queda
		// explícitamente limpio.
		res.State = StateClientUnbound
		res.View = ViewClienteHome
		res.ActivePosID = nil

	default:
		r.log.Warn().Str("role", identity.Role).Msg("rol desconocido en resolución de sesión")
		if clearErr := r.store.Clear(ctx, sessionID); clearErr != nil {
			r.log.Error().Err(clearErr).Msg("no se pudo limpiar la sesión rechazada")
		}
		res.State = StateRejected
		res.Identity = nil
		return res, domain.ErrForbidden
	}

	rec := &session.Record{Identity: *identity, ActivePosID: res.ActivePosID}
	if err := r.store.Persist(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("persistir sesión: %w", err)
	}
	return res, nil
}

// bindSuperadmin vincula al superadmin: conserva la sucursal activa previa si
// venía en el registro, si no toma la primera del directorio.
func (r *Resolver) bindSuperadmin(ctx context.Context, prevActive *int) (*int, string, error) {
	if prevActive != nil {
		name, err := r.posName(ctx, *prevActive)
		if err != nil {
			return nil, "", err
		}
		return prevActive, name, nil
	}
	list, err := r.pos.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("listar sucursales: %w", err)
	}
	if len(list) == 0 {
		return nil, unknownPosName, nil
	}
	first := list[0]
	return &first.ID, first.Name, nil
}

// posName busca el nombre de la sucursal; un id sin entrada en el directorio
// degrada al placeholder en lugar de fallar.
func (r *Resolver) posName(ctx context.Context, id int) (string, error) {
	pos, err := r.pos.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("consultar sucursal %d: %w", id, err)
	}
	if pos == nil {
		return unknownPosName, nil
	}
	return pos.Name, nil
}

// SwitchPos cambia la sucursal activa de una sesión superadmin. Tolera un id
// que no exista en el directorio (placeholder); la identidad persistida no
// cambia, solo el puntero.
func (r *Resolver) SwitchPos(ctx context.Context, sessionID string, posID int) (*Resolution, error) {
	rec, err := r.store.Restore(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("restaurar sesión: %w", err)
	}
	if rec == nil {
		return nil, domain.ErrUnauthorized
	}
	if entity.NormalizeRole(rec.Identity.Role) != entity.RoleSuperadmin {
		return nil, domain.ErrForbidden
	}
	name, err := r.posName(ctx, posID)
	if err != nil {
		return nil, err
	}
	rec.ActivePosID = &posID
	if err := r.store.Persist(ctx, sessionID, rec); err != nil {
		return nil, fmt.Errorf("persistir sesión: %w", err)
	}
	identity := rec.Identity
	return &Resolution{
		State:        StateBound,
		View:         ViewDashboard,
		Identity:     &identity,
		ActivePosID:  &posID,
		PosName:      name,
		CanSwitchPos: true,
	}, nil
}

// Logout desmonta la sesión: identidad y puntero de sucursal activa caen
// juntos con el registro, sea cual sea el rol previo.
func (r *Resolver) Logout(ctx context.Context, sessionID string) error {
	if err := r.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("cerrar sesión: %w", err)
	}
	return nil
}

// Directory devuelve el directorio de sucursales para el selector.
func (r *Resolver) Directory(ctx context.Context) ([]*entity.PointOfSale, error) {
	list, err := r.pos.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar sucursales: %w", err)
	}
	return list, nil
}
