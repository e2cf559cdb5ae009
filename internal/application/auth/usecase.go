package auth

import (
	"context"
	"fmt"

	"github.com/tu-usuario/agendapos/internal/domain"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
	"github.com/tu-usuario/agendapos/pkg/logger"
)

// Modos de verificación del gateway. Son mutuamente excluyentes; el llamador
// elige uno según el formulario de login.
const (
	ModeGeneral = "general" // usuario de sucursal, verificado contra el servicio de datos
	ModeMaster  = "master"  // dueño de la plataforma, verificado por la función remota
)

// Gateway unifica las dos estrategias de autenticación detrás de un mismo
// resultado: un SystemUser con el rol ya normalizado. No toca el almacén de
// sesiones; persistir la identidad es responsabilidad del resolver. Su único
// efecto lateral es la entrada de auditoría del acceso master.
type Gateway struct {
	users  repository.UserRepository
	master MasterAuthenticator
	audit  repository.AuditRepository
	log    *logger.Logger
}

// NewGateway construye el gateway de autenticación.
func NewGateway(users repository.UserRepository, master MasterAuthenticator, audit repository.AuditRepository, log *logger.Logger) *Gateway {
	return &Gateway{users: users, master: master, audit: audit, log: log}
}

// Login verifica las credenciales según el modo y devuelve el usuario con rol
// canónico. Errores de credenciales: ErrUserNotFound, ErrNoPasswordSet,
// ErrWrongPassword (modo general) y ErrInvalidCredentials (modo master).
func (g *Gateway) Login(ctx context.Context, mode, username, password string) (*entity.SystemUser, error) {
	if mode == ModeMaster {
		return g.loginMaster(ctx, username, password)
	}
	return g.loginGeneral(ctx, username, password)
}

// loginGeneral busca el usuario en el servicio de datos y compara el password
// como cadena opaca; el almacenamiento criptográfico de credenciales queda
// fuera de este núcleo.
func (g *Gateway) loginGeneral(ctx context.Context, username, password string) (*entity.SystemUser, error) {
	user, err := g.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Password == "" {
		// Un administrador debe asignar contraseña antes de que esta cuenta entre.
		return nil, domain.ErrNoPasswordSet
	}
	if user.Password != password {
		return nil, domain.ErrWrongPassword
	}
	user.Role = entity.NormalizeRole(user.Role)
	return user, nil
}

// loginMaster delega la verificación a la función remota de confianza.
// Cualquier rechazo se colapsa en ErrInvalidCredentials; solo un éxito genera
// la entrada de auditoría.
func (g *Gateway) loginMaster(ctx context.Context, username, password string) (*entity.SystemUser, error) {
	if g.master == nil {
		return nil, domain.ErrInvalidCredentials
	}
	mu, err := g.master.Authenticate(ctx, username, password)
	if err != nil {
		g.log.Warn().Str("username", username).Err(err).Msg("rechazo de autenticación master")
		return nil, domain.ErrInvalidCredentials
	}
	if auditErr := g.audit.Log(ctx, "login_master", "plataforma", mu.Username); auditErr != nil {
		// La auditoría no bloquea el acceso, pero queda registrada la falla.
		g.log.Error().Err(auditErr).Msg("no se pudo registrar auditoría de acceso master")
	}
	name := mu.Name
	if name == "" {
		name = mu.Username
	}
	return &entity.SystemUser{
		Username: mu.Username,
		Name:     name,
		Role:     entity.RolePlatformOwner,
	}, nil
}
