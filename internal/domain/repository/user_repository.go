package repository

import (
	"context"

	"github.com/tu-usuario/agendapos/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para SystemUser (DIP).
// FindByUsername devuelve (nil, nil) si el usuario no existe; error solo ante
// fallos de infraestructura.
type UserRepository interface {
	Create(ctx context.Context, user *entity.SystemUser) error
	Save(ctx context.Context, user *entity.SystemUser) error
	FindByUsername(ctx context.Context, username string) (*entity.SystemUser, error)
	List(ctx context.Context, posID *int, limit, offset int) ([]*entity.SystemUser, error)
	Delete(ctx context.Context, username string) error
}
