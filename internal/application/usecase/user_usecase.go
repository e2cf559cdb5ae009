package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/tu-usuario/agendapos/internal/application/dto"
	"github.com/tu-usuario/agendapos/internal/domain"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
)

// UserUseCase administración de usuarios y de sus permisos granulares.
// Solo el formulario administrativo pasa por aquí; los permisos jamás se
// infieren, se editan explícitamente.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// SaveUser crea o edita un usuario. Un alta sin contraseña se rechaza con
// ErrPasswordRequired; en una edición, contraseña vacía significa "conservar
// la actual". El rol se normaliza al entrar.
func (uc *UserUseCase) SaveUser(ctx context.Context, in dto.SaveUserRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Name) == "" || in.Role == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}

	now := nowFunc()
	user := &entity.SystemUser{
		Username:    in.Username,
		Password:    in.Password,
		Name:        in.Name,
		Role:        entity.NormalizeRole(in.Role),
		PosID:       in.PosID,
		Permissions: in.Permissions,
		UpdatedAt:   now,
	}

	if existing == nil {
		if in.Password == "" {
			return nil, domain.ErrPasswordRequired
		}
		user.CreatedAt = now
		if err := uc.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		return toUserResponse(user), nil
	}

	if in.Password == "" {
		user.Password = existing.Password
	}
	if in.Permissions == nil {
		user.Permissions = existing.Permissions
	}
	user.CreatedAt = existing.CreatedAt
	if err := uc.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("guardar usuario: %w", err)
	}
	return toUserResponse(user), nil
}

// TogglePermission invierte una sola capacidad del usuario, dejando intactas
// las demás (semántica de merge-on-toggle). Una clave ausente cuenta como no
// concedida, por lo que el primer toggle la concede.
func (uc *UserUseCase) TogglePermission(ctx context.Context, username, capability string) (*dto.UserResponse, error) {
	if capability == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Permissions == nil {
		user.Permissions = map[string]bool{}
	}
	user.Permissions[capability] = !user.Permissions[capability]
	user.UpdatedAt = nowFunc()
	if err := uc.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("guardar permisos: %w", err)
	}
	return toUserResponse(user), nil
}

// GetByUsername obtiene un usuario, o nil si no existe.
func (uc *UserUseCase) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		return nil, nil
	}
	return toUserResponse(user), nil
}

// List lista usuarios, opcionalmente filtrados por sucursal.
func (uc *UserUseCase) List(ctx context.Context, posID *int, page dto.PageRequest) ([]*dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.List(ctx, posID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar usuarios: %w", err)
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, username string) error {
	if err := uc.repo.Delete(ctx, username); err != nil {
		return fmt.Errorf("eliminar usuario: %w", err)
	}
	return nil
}

func toUserResponse(u *entity.SystemUser) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		Username:    u.Username,
		Name:        u.Name,
		Role:        u.Role,
		PosID:       u.PosID,
		Permissions: u.Permissions,
		HasPassword: u.Password != "",
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
