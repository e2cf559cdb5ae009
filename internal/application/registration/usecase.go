package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/google/uuid"
	"github.com/tu-usuario/agendapos/internal/application/session"
	"github.com/tu-usuario/agendapos/internal/domain"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
	"github.com/tu-usuario/agendapos/pkg/logger"
)

// titleCaser normaliza el nombre visible de la ficha ("juan pérez" -> "Juan Pérez").
var titleCaser = cases.Title(language.Spanish)

// nowFunc reemplazable en tests.
var nowFunc = time.Now

// Input datos del formulario de auto-registro. ReferralPosID viene del
// contexto de referido capturado del enlace de entrada, si lo hubo.
type Input struct {
	Username      string
	Password      string
	Name          string
	Phone         string
	ReferralPosID *int
}

// Result salida del registro: el username queda disponible para pre-llenar el
// login y PosID indica bajo qué sucursal quedó la ficha.
type Result struct {
	Username string
	PosID    int
}

// UseCase flujo de auto-registro de clientes: crea la cuenta con rol cliente
// y la ficha de cliente bajo la sucursal de referido (o la sucursal por
// defecto), sin alterar de forma permanente el puntero de sucursal activa del
// visitante.
type UseCase struct {
	users        repository.UserRepository
	clients      repository.ClientRepository
	pos          repository.PosRepository
	notif        repository.NotificationRepository
	defaultPosID int
	log          *logger.Logger
}

// New construye el flujo de registro.
func New(users repository.UserRepository, clients repository.ClientRepository, pos repository.PosRepository, notif repository.NotificationRepository, defaultPosID int, log *logger.Logger) *UseCase {
	return &UseCase{users: users, clients: clients, pos: pos, notif: notif, defaultPosID: defaultPosID, log: log}
}

// ResolveReferral resuelve una sola vez el parámetro de referido del enlace de
// entrada. Un id que no exista en el directorio produce (nil, nil): visita sin
// referido, no un error.
func (uc *UseCase) ResolveReferral(ctx context.Context, posID int) (*entity.PointOfSale, error) {
	pos, err := uc.pos.GetByID(ctx, posID)
	if err != nil {
		return nil, fmt.Errorf("resolver referido: %w", err)
	}
	return pos, nil
}

// Register ejecuta el alta. La unicidad del username es lectura-luego-escritura
// sin garantía transaccional; el índice único de la tabla actúa de respaldo y
// el repositorio traduce la violación a ErrUsernameTaken.
//
// La ficha de cliente se escribe bajo la sucursal objetivo usando el
// intercambio acotado del puntero activo: sess.WithActivePos garantiza que el
// puntero previo se restaura en toda salida, incluso si la escritura falla.
func (uc *UseCase) Register(ctx context.Context, sess *session.Context, in Input) (*Result, error) {
	if strings.TrimSpace(in.Username) == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("verificar username: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	target := uc.defaultPosID
	if in.ReferralPosID != nil {
		target = *in.ReferralPosID
	}

	now := nowFunc()
	name := titleCaser.String(strings.TrimSpace(in.Name))
	user := &entity.SystemUser{
		Username:  in.Username,
		Password:  in.Password,
		Name:      name,
		Role:      entity.RoleCliente,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	err = sess.WithActivePos(ctx, target, func() error {
		active := sess.ActivePos()
		client := &entity.Client{
			ID:        uuid.New().String(),
			PosID:     *active,
			Name:      name,
			Username:  in.Username,
			Phone:     in.Phone,
			CreatedAt: now,
		}
		return uc.clients.Create(ctx, client)
	})
	if err != nil {
		return nil, fmt.Errorf("crear ficha de cliente: %w", err)
	}

	entry := fmt.Sprintf("nuevo cliente registrado: %s (sucursal %d)", in.Username, target)
	if notifErr := uc.notif.Log(ctx, entry); notifErr != nil {
		uc.log.Warn().Err(notifErr).Msg("no se pudo registrar la notificación de alta")
	}

	return &Result{Username: in.Username, PosID: target}, nil
}
