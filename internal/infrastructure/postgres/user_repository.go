package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/agendapos/internal/domain"
	"github.com/tu-usuario/agendapos/internal/domain/entity"
	"github.com/tu-usuario/agendapos/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// permissions se guarda como JSONB; pgx lo mapea directo a map[string]bool.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario. Una violación del índice único de
// username se traduce a ErrUsernameTaken: es el respaldo de la verificación
// lectura-luego-escritura del registro.
func (r *UserRepo) Create(ctx context.Context, user *entity.SystemUser) error {
	query := `
		INSERT INTO users (username, password, name, role, pos_id, permissions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		user.Username, user.Password, user.Name, user.Role, user.PosID, user.Permissions,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Save actualiza un usuario existente (incluidos sus permisos).
func (r *UserRepo) Save(ctx context.Context, user *entity.SystemUser) error {
	query := `
		UPDATE users
		SET password = $2, name = $3, role = $4, pos_id = $5, permissions = $6, updated_at = $7
		WHERE username = $1`
	tag, err := r.pool.Exec(ctx, query,
		user.Username, user.Password, user.Name, user.Role, user.PosID, user.Permissions,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// FindByUsername obtiene un usuario por username, o (nil, nil) si no existe.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*entity.SystemUser, error) {
	query := `
		SELECT username, password, name, role, pos_id, permissions, created_at, updated_at
		FROM users WHERE username = $1`
	var u entity.SystemUser
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&u.Username, &u.Password, &u.Name, &u.Role, &u.PosID, &u.Permissions,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// List lista usuarios; posID nil lista todos.
func (r *UserRepo) List(ctx context.Context, posID *int, limit, offset int) ([]*entity.SystemUser, error) {
	query := `
		SELECT username, password, name, role, pos_id, permissions, created_at, updated_at
		FROM users
		WHERE ($1::int IS NULL OR pos_id = $1)
		ORDER BY username
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, posID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*entity.SystemUser
	for rows.Next() {
		var u entity.SystemUser
		if err := rows.Scan(
			&u.Username, &u.Password, &u.Name, &u.Role, &u.PosID, &u.Permissions,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// Delete elimina un usuario por username.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
